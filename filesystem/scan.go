// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/cybrota/arbor/hierarchy"
	"github.com/cybrota/arbor/trace"
)

// ErrScanLimit is returned with the partial tree when ScanOptions.MaxEntries is hit.
var ErrScanLimit = errors.New("max scanned entries limit reached")

// ScanOptions tune Scan.
type ScanOptions struct {
	// Ignore holds glob patterns matched against entry names.
	Ignore []string
	// MaxEntries stops the scan once reached; zero means no limit.
	MaxEntries int
	// Progress draws a progress bar on Output.
	Progress bool
	Output   io.Writer
	Log      logrus.FieldLogger
}

// DefaultIgnore skips version control metadata and dependency folders.
var DefaultIgnore = []string{".git", "node_modules", "__pycache__", ".DS_Store"}

type scanner struct {
	tree  *hierarchy.Tree[Entry]
	fs    afero.Fs
	opts  ScanOptions
	log   logrus.FieldLogger
	bar   *progressbar.ProgressBar
	count int
}

// Scan reads the directory root of fsys into a new tree. Within a folder
// directories come first, then files, each ordered by name ignoring case.
// Unreadable folders are skipped.
func Scan(fsys afero.Fs, root string, opts ScanOptions) (*Tree, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errNotDir, "%q", root)
	}

	t := New()
	s := &scanner{tree: t.tree, fs: fsys, opts: opts, log: trace.OrDiscard(opts.Log)}
	if opts.Progress {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Scanning files..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		defer s.bar.Finish()
	}

	err = s.walk(t.tree.Root(), root)
	s.log.WithFields(logrus.Fields{"root": root, "entries": s.count}).Info("scan finished")
	return t, err
}

func (s *scanner) walk(dir *hierarchy.Node[Entry], path string) error {
	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		if os.IsPermission(err) {
			s.log.WithField("path", path).Debug("permission denied, skipping")
			return nil
		}
		return errors.Wrapf(err, "read %q", path)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].IsDir() != infos[j].IsDir() {
			return infos[i].IsDir()
		}
		return strings.ToLower(infos[i].Name()) < strings.ToLower(infos[j].Name())
	})

	for _, info := range infos {
		if s.shouldSkip(info.Name()) {
			s.log.WithField("path", filepath.Join(path, info.Name())).Debug("ignored")
			continue
		}
		if s.opts.MaxEntries > 0 && s.count >= s.opts.MaxEntries {
			if s.bar != nil {
				s.bar.Describe("Max entries limit reached")
			}
			return ErrScanLimit
		}

		entry := Entry{Name: info.Name(), Dir: info.IsDir(), Modified: info.ModTime()}
		if !entry.Dir {
			entry.Size = info.Size()
		}
		node, err := hierarchy.NewNode(entry.Name, entry)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Warn("unusable entry name")
			continue
		}
		if err := s.tree.Attach(dir, node); err != nil {
			return err
		}
		s.count++
		if s.bar != nil {
			_ = s.bar.Add(1)
			s.bar.Describe(fmt.Sprintf("Scanning: %s", shorten(info.Name(), 30)))
		}

		if entry.Dir {
			if err := s.walk(node, filepath.Join(path, info.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *scanner) shouldSkip(name string) bool {
	for _, pattern := range s.opts.Ignore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func shorten(name string, max int) string {
	if len(name) > max {
		return name[:max-3] + "..."
	}
	return name
}
