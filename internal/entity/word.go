package entity

import (
	"errors"
	"strings"
)

var ErrInvalidWordPair = errors.New("word pair must hold two different non-empty words")

type Word struct {
	ID               string `json:"id"`
	Word             string `json:"word"`
	Category         string `json:"category"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
}

// WordPair is a civilian/undercover term pair before sides are decided.
type WordPair struct {
	ID     string `json:"id"`
	First  string `json:"first"`
	Second string `json:"second"`
}

func (that WordPair) Validate() error {
	first, second := strings.TrimSpace(that.First), strings.TrimSpace(that.Second)
	if first == "" || second == "" || strings.EqualFold(first, second) {
		return ErrInvalidWordPair
	}

	return nil
}

// Split flips a fair coin to decide which word goes to civilians.
func (that WordPair) Split(rnd Randomizer) (string, string) {
	if rnd.IntN(2) == 0 {
		return that.First, that.Second
	}

	return that.Second, that.First
}
