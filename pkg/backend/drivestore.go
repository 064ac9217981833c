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

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/mountbox/mountbox/pkg/log"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveStore serves a Google Drive folder. Paths are resolved one element
// at a time by name; of several files sharing a name the first listed wins.
type DriveStore struct {
	svc  *drive.Service
	root string
}

var _ Store = &DriveStore{}

// NewDriveStore serves the folder with id root ("root" for My Drive).
func NewDriveStore(svc *drive.Service, root string) *DriveStore {
	if root == "" {
		root = "root"
	}
	return &DriveStore{svc: svc, root: root}
}

// driveQuery lists the live children of parent called name.
func driveQuery(parent, name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escaped, parent)
}

func (d *DriveStore) resolve(p string) (*drive.File, error) {
	file := &drive.File{Id: d.root, MimeType: folderMimeType}
	for _, name := range strings.Split(strings.Trim(Clean(p), "/"), "/") {
		if name == "" {
			continue
		}
		if file.MimeType != folderMimeType {
			return nil, fmt.Errorf("%s: %w", p, os.ErrNotExist)
		}
		res, err := d.svc.Files.List().
			Q(driveQuery(file.Id, name)).
			Fields("files(id, name, mimeType, size)").
			Do()
		if err != nil {
			return nil, err
		}
		if len(res.Files) == 0 {
			return nil, fmt.Errorf("%s: %w", p, os.ErrNotExist)
		}
		file = res.Files[0]
	}
	return file, nil
}

func (d *DriveStore) Stat(p string) (Info, error) {
	file, err := d.resolve(p)
	if err != nil {
		return Info{}, err
	}
	if file.MimeType == folderMimeType {
		return Info{Type: mbpb.FileType_DIRECTORY}, nil
	}
	return Info{Type: mbpb.FileType_FILE, Size: uint64(file.Size)}, nil
}

func (d *DriveStore) ReadFile(p string) ([]byte, error) {
	file, err := d.resolve(p)
	if err != nil {
		return nil, err
	}
	if file.MimeType == folderMimeType {
		return nil, fmt.Errorf("%s: %w", p, ErrIsDir)
	}
	resp, err := d.svc.Files.Get(file.Id).Download()
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %v", p, err)
	}
	defer resp.Body.Close()
	return ioutil.ReadAll(resp.Body)
}

// DriveClient returns an HTTP client authorized for read-only Drive access
// using the OAuth client in credentialsFile. The token is cached in
// tokenFile; without one the user is walked through the web flow.
func DriveClient(logger *log.Logger, credentialsFile, tokenFile string) (*http.Client, error) {
	b, err := ioutil.ReadFile(credentialsFile)
	if err != nil {
		logger.Errorf("unable to read client secret file: %v", err)
		return nil, err
	}
	config, err := google.ConfigFromJSON(b, drive.DriveReadonlyScope)
	if err != nil {
		logger.Errorf("unable to parse client secret file to config: %v", err)
		return nil, err
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		if tok, err = tokenFromWeb(config); err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			logger.Warnf("unable to cache oauth token: %v", err)
		}
	}
	return config.Client(context.Background(), tok), nil
}

func tokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("reading authorization code: %v", err)
	}
	tok, err := config.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, fmt.Errorf("retrieving token from web: %v", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
