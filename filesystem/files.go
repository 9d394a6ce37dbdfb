// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"gopmove/conlog"
	"gopmove/pack"
)

// BaseGame is the directory of the base game below the base dir.
const BaseGame = "valve"

var (
	baseDir string
	gameDir string
	// search is ordered from highest to lowest priority
	search []source
	mutex  sync.RWMutex
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

type source interface {
	Open(name string) (File, error)
	Close() error
	String() string
}

type packSource struct {
	p *pack.Pack
}

type closer struct {
	*io.SectionReader
}

func (*closer) Close() error {
	return nil
}

func (p packSource) Open(name string) (File, error) {
	// inside a pack file there is no 'root'. all files are relative to '.'
	name = strings.TrimPrefix(name, "/")
	f, err := p.p.Open(name)
	if err != nil {
		return nil, err
	}
	return &closer{f}, nil
}

func (p packSource) Close() error {
	return p.p.Close()
}

func (p packSource) String() string {
	return p.p.String()
}

type dirSource string

func (d dirSource) Open(name string) (File, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d dirSource) Close() error {
	return nil
}

func (d dirSource) String() string {
	return string(d)
}

func GameDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return gameDir
}

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

func closeAll() {
	for _, s := range search {
		if err := s.Close(); err != nil {
			conlog.Warnf("closing %s: %v", s, err)
		}
	}
	search = nil
}

// UseBaseDir searches the base game below dir.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	closeAll()
	baseDir = dir
	gameDir = filepath.Join(baseDir, BaseGame)
	search = useDir(gameDir)
}

// UseGameDir searches the mod directory dir before the base game.
func UseGameDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	closeAll()
	gameDir = filepath.Join(baseDir, dir)
	search = append(useDir(gameDir), useDir(filepath.Join(baseDir, BaseGame))...)
}

// Close releases all open packs.
func Close() {
	mutex.Lock()
	defer mutex.Unlock()
	closeAll()
}

// useDir returns pak[i].pak from high to low number followed by the
// loose files of dir.
func useDir(dir string) []source {
	var paks []source
	for i := 0; ; i++ {
		pfn := fmt.Sprintf("pak%d.pak", i)
		p, err := pack.NewPackReader(filepath.Join(dir, pfn))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				conlog.Warnf("%v", err)
			}
			break
		}
		conlog.DPrintf("Added packfile %s (%d files)\n", p, len(p.Files()))
		paks = append([]source{packSource{p}}, paks...)
	}
	return append(paks, dirSource(dir))
}

func Open(name string) (File, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	for _, s := range search {
		f, err := s.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "opening %s in %s", name, s)
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
