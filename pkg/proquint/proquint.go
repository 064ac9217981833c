// Copyright 2018 The Kura Authors.
// Copyright 2024 The Mountbox Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proquint renders integers as pronounceable identifiers
// (https://arxiv.org/html/0901.4016) and parses them back. Backends use
// them to name open files.
package proquint

import (
	"bytes"
	"errors"
	"fmt"
)

var consonants = []byte("bdfghjklmnprstvz")
var vowels = []byte("aiou")

// ErrInvalid is returned when parsing something that isn't a well-formed
// proquint.
var ErrInvalid = errors.New("proquint: invalid identifier")

// FromUint16 converts an uint16 to a proquint of alternating consonants and
// vowels as follows.
//
// Four-bits as a consonant:
//      0 1 2 3 4 5 6 7 8 9 A B C D E F
//      b d f g h j k l m n p r s t v z
//
// Two-bits as a vowel:
//      0 1 2 3
//      a i o u
//
// Whole 16-bit word, where "con" = consonant, "vo" = vowel:
//      0 1 2 3 4 5 6 7 8 9 A B C D E F
//      +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//      |con    |vo |con    |vo |con    |
//      +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
func FromUint16(i uint16) []byte {
	quint := make([]byte, 0, 5)
	for j := 0; j < 5; j++ {
		if j%2 == 0 {
			quint = append(quint, consonants[i>>12])
			i <<= 4
		} else {
			quint = append(quint, vowels[i>>14])
			i <<= 2
		}
	}
	return quint
}

// FromUint32 renders the high and low halves separated by a dash.
func FromUint32(i uint32) []byte {
	return join(FromUint16(uint16(i>>16)), FromUint16(uint16(i)))
}

// FromUint64 renders the high and low 32 bits separated by a dash.
func FromUint64(i uint64) []byte {
	return join(FromUint32(uint32(i>>32)), FromUint32(uint32(i)))
}

func join(hi, lo []byte) []byte {
	quint := make([]byte, 0, len(hi)+1+len(lo))
	quint = append(quint, hi...)
	quint = append(quint, '-')
	return append(quint, lo...)
}

func ToUint16(quint []byte) (uint16, error) {
	if len(quint) != 5 {
		return 0, fmt.Errorf("%w: %q has length %d, expected 5", ErrInvalid, quint, len(quint))
	}

	var i uint16
	for j, c := range quint {
		if j%2 == 0 {
			v := bytes.IndexByte(consonants, c)
			if v == -1 {
				return 0, fmt.Errorf("%w: expected consonant at %d in %q", ErrInvalid, j, quint)
			}
			i = i<<4 | uint16(v)
		} else {
			v := bytes.IndexByte(vowels, c)
			if v == -1 {
				return 0, fmt.Errorf("%w: expected vowel at %d in %q", ErrInvalid, j, quint)
			}
			i = i<<2 | uint16(v)
		}
	}
	return i, nil
}

func ToUint32(quint []byte) (uint32, error) {
	if len(quint) != 5*2+1 || quint[5] != '-' { // Count the separator.
		return 0, fmt.Errorf("%w: %q, expected xxxxx-xxxxx", ErrInvalid, quint)
	}
	hi, err := ToUint16(quint[0:5])
	if err != nil {
		return 0, err
	}
	lo, err := ToUint16(quint[6:])
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func ToUint64(quint []byte) (uint64, error) {
	if len(quint) != 5*4+3 || quint[11] != '-' { // Count the separators.
		return 0, fmt.Errorf("%w: %q, expected xxxxx-xxxxx-xxxxx-xxxxx", ErrInvalid, quint)
	}
	hi, err := ToUint32(quint[0:11])
	if err != nil {
		return 0, err
	}
	lo, err := ToUint32(quint[12:])
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}
