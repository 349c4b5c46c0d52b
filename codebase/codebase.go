// Package codebase keeps every grammar and source file of a project parsed
// in memory, together with the diagnostics found while parsing them.
package codebase

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/project"
)

var log = commonlog.GetLogger("ahi.codebase")

// GrammarExt is the extension of grammar files.
const GrammarExt = ".ebnf"

type Codebase struct {
	mu        sync.RWMutex
	rootDir   string
	project   *project.Project
	languages map[string]*compiled
	files     map[string]*FileInfo
}

type compiled struct {
	lang *parse.Language
	err  error
}

// FileInfo is the parsed state of one file. Grammar is set for grammar
// files; Tree and Tokens for files of a configured language.
type FileInfo struct {
	Path        string
	Content     []byte
	Language    string
	Grammar     grammar.Grammar
	Tree        *parse.Node
	Tokens      []lex.Token
	Diagnostics []Diagnostic
}

// New creates an empty codebase rooted at rootDir. proj may be nil, in
// which case only grammar files are tracked.
func New(rootDir string, proj *project.Project) *Codebase {
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}
	return &Codebase{
		rootDir:   rootDir,
		project:   proj,
		languages: make(map[string]*compiled),
		files:     make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// Tracks reports whether path is a grammar file or a file of a configured
// language.
func (c *Codebase) Tracks(path string) bool {
	if filepath.Ext(path) == GrammarExt {
		return true
	}
	if c.project == nil {
		return false
	}
	_, ok := c.project.LanguageFor(path)
	return ok
}

// ScanAll parses every tracked file below the root directory.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && shouldIgnoreDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.Tracks(path) {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

// ScanFile reads path from disk and parses it.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile parses content as the current state of path. Updating the
// grammar of a language reparses every file of that language.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	path = c.abs(path)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updateFileLocked(path, content)
	if filepath.Ext(path) == GrammarExt {
		c.grammarChangedLocked(path)
	}
	return nil
}

func (c *Codebase) updateFileLocked(path string, content []byte) {
	f := &FileInfo{Path: path, Content: content}
	if filepath.Ext(path) == GrammarExt {
		c.analyzeGrammar(f)
	} else if c.project != nil {
		if l, ok := c.project.LanguageFor(path); ok {
			f.Language = l.Name
			c.analyzeSource(f, c.languageLocked(l))
		}
	}
	log.Debugf("%s: %d diagnostics", path, len(f.Diagnostics))
	c.files[path] = f
}

// grammarChangedLocked drops the compiled languages built from path and
// reparses their files.
func (c *Codebase) grammarChangedLocked(path string) {
	if c.project == nil {
		return
	}
	for _, l := range c.project.Languages {
		if l.GrammarPath() != path && l.LexerPath() != path {
			continue
		}
		delete(c.languages, l.Name)
		for p, f := range c.files {
			if f.Language == l.Name {
				c.updateFileLocked(p, f.Content)
			}
		}
	}
}

func (c *Codebase) languageLocked(l *project.Language) *compiled {
	if cl, ok := c.languages[l.Name]; ok {
		return cl
	}
	lang, err := l.Compile()
	if err != nil {
		log.Warningf("%s", err)
	}
	cl := &compiled{lang: lang, err: err}
	c.languages[l.Name] = cl
	return cl
}

func (c *Codebase) RemoveFile(path string) {
	path = c.abs(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[c.abs(path)]
}

// Files returns every tracked file ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *FileInfo) int { return strings.Compare(a.Path, b.Path) })
	return files
}

func (c *Codebase) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.rootDir, path)
}
