// internal/generator/alias.go
package generator

import (
	"bufio"
	"context"
	"crypto/rand"
	"embed"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"cyberwallet-api/internal/apperr"
)

//go:embed words.txt
var wordsFS embed.FS

const (
	minWords        = 100
	maxAliasRetries = 10
)

var wordRe = regexp.MustCompile(`^[a-z]+$`)

// AliasExistsFunc reports whether an alias is already taken.
type AliasExistsFunc func(ctx context.Context, alias string) (bool, error)

// AliasGenerator produces word.word.word wallet aliases from the embedded
// dictionary, drawing words with crypto/rand.
type AliasGenerator struct {
	words []string
}

// NewAliasGenerator loads the embedded word list. Initialization fails when
// fewer than 100 words survive the lowercase-ASCII filter.
func NewAliasGenerator() (*AliasGenerator, error) {
	f, err := wordsFS.Open("words.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line != "" && wordRe.MatchString(line) {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read embedded word list: %w", err)
	}
	if len(words) < minWords {
		return nil, fmt.Errorf("word list too small for unique aliases: %d words, need at least %d", len(words), minWords)
	}
	return &AliasGenerator{words: words}, nil
}

// NewAliasGeneratorFromWords builds a generator over an explicit dictionary.
func NewAliasGeneratorFromWords(words []string) (*AliasGenerator, error) {
	if len(words) < minWords {
		return nil, fmt.Errorf("word list too small for unique aliases: %d words, need at least %d", len(words), minWords)
	}
	return &AliasGenerator{words: words}, nil
}

// Generate returns a fresh alias that matches the required format and is not
// taken according to exists. After 10 failed attempts it surfaces
// ALIAS_ALREADY_EXISTS so the caller can retry the whole operation.
func (g *AliasGenerator) Generate(ctx context.Context, exists AliasExistsFunc) (string, error) {
	for try := 0; try < maxAliasRetries; try++ {
		alias := g.candidate()
		if !validAliasFormat(alias) {
			continue
		}
		taken, err := exists(ctx, alias)
		if err != nil {
			return "", fmt.Errorf("alias uniqueness check: %w", err)
		}
		if !taken {
			return alias, nil
		}
	}
	return "", apperr.New(apperr.CodeAliasAlreadyExists, "No se pudo generar un alias único después de varios intentos.")
}

func (g *AliasGenerator) candidate() string {
	return g.word() + "." + g.word() + "." + g.word()
}

func (g *AliasGenerator) word() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(g.words))))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return g.words[n.Int64()]
}

var aliasFormatRe = regexp.MustCompile(`^[a-z]{2,}\.[a-z]{2,}\.[a-z]{2,}$`)

func validAliasFormat(alias string) bool {
	return len(alias) >= 6 && len(alias) <= 30 &&
		strings.Count(alias, ".") == 2 &&
		aliasFormatRe.MatchString(alias)
}
