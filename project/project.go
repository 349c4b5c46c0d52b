// Package project loads the .ahi.yaml file that maps source files to the
// grammars used to parse them.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
)

var log = commonlog.GetLogger("ahi.project")

// FileName is the name of the project file.
const FileName = ".ahi.yaml"

// ErrNotFound is returned by Find when no project file exists in the
// directory or any of its parents.
var ErrNotFound = errors.New("no " + FileName + " found")

// Project is a directory tree with a project file at its root.
type Project struct {
	RootDir   string
	Path      string
	Languages []*Language
}

// Language describes how to parse files with one of the given extensions.
// Grammar and Lexer paths are relative to the project root unless absolute.
type Language struct {
	Name       string   `yaml:"name"`
	Grammar    string   `yaml:"grammar"`
	Lexer      string   `yaml:"lexer,omitempty"`
	Start      string   `yaml:"start"`
	Extensions []string `yaml:"extensions"`
	Skip       []string `yaml:"skip,omitempty"`
	Tokens     []string `yaml:"tokens,omitempty"`

	project *Project
}

type file struct {
	Languages []*Language `yaml:"languages"`
}

// Find returns the path of the project file in dir or its closest parent.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load finds the project file for the current directory and loads it.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom finds the project file for dir and loads it.
func LoadFrom(dir string) (*Project, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and validates the project file at path.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = abs
	log.Debugf("loaded %s with %d languages", abs, len(p.Languages))
	return p, nil
}

// Parse decodes a project file whose paths are relative to rootDir.
func Parse(data []byte, rootDir string) (*Project, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse project file: %w", err)
	}

	p := &Project{RootDir: rootDir, Languages: f.Languages}
	seenNames := make(map[string]bool)
	seenExts := make(map[string]string) // extension → language

	for i, l := range p.Languages {
		if l == nil {
			return nil, fmt.Errorf("language %d: empty entry", i+1)
		}
		l.project = p
		if l.Name == "" {
			return nil, fmt.Errorf("language %d: name is required", i+1)
		}
		if seenNames[l.Name] {
			return nil, fmt.Errorf("duplicate language %q", l.Name)
		}
		seenNames[l.Name] = true

		if l.Grammar == "" {
			return nil, fmt.Errorf("language %q: grammar is required", l.Name)
		}
		if l.Start == "" {
			return nil, fmt.Errorf("language %q: start is required", l.Name)
		}
		for _, ext := range l.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return nil, fmt.Errorf("language %q: extension %q must start with '.'", l.Name, ext)
			}
			if prev, ok := seenExts[ext]; ok {
				return nil, fmt.Errorf("extension %q claimed by %q and %q", ext, prev, l.Name)
			}
			seenExts[ext] = l.Name
		}
	}
	return p, nil
}

// Language returns the language with the given name, or nil if not found.
func (p *Project) Language(name string) *Language {
	for _, l := range p.Languages {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// LanguageFor returns the language whose extensions match path.
func (p *Project) LanguageFor(path string) (*Language, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, false
	}
	for _, l := range p.Languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l, true
			}
		}
	}
	return nil, false
}

// Resolve returns path relative to the project root unless it is absolute.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.RootDir, path)
}

// GrammarPath returns the resolved path of the parser grammar.
func (l *Language) GrammarPath() string {
	return l.resolve(l.Grammar)
}

// LexerPath returns the resolved path of the token grammar, which is the
// parser grammar unless a separate lexer is configured.
func (l *Language) LexerPath() string {
	if l.Lexer == "" {
		return l.GrammarPath()
	}
	return l.resolve(l.Lexer)
}

func (l *Language) resolve(path string) string {
	if l.project == nil {
		return path
	}
	return l.project.Resolve(path)
}

// Compile loads the grammars of l and compiles them into a parse.Language.
func (l *Language) Compile() (*parse.Language, error) {
	g, err := grammar.ParseFile(l.GrammarPath())
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", l.Name, err)
	}
	lexer := g
	if l.Lexer != "" {
		if lexer, err = grammar.ParseFile(l.LexerPath()); err != nil {
			return nil, fmt.Errorf("language %q: %w", l.Name, err)
		}
	}

	var opts []lex.Option
	if len(l.Tokens) > 0 {
		opts = append(opts, lex.WithTokens(l.Tokens...))
	}
	lang, err := parse.NewLanguage(lexer, g, l.Start, l.Skip, opts...)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", l.Name, err)
	}
	return lang, nil
}
