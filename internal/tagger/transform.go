package tagger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketTags/internal/model"
)

const (
	// MaxSymbolLength is the longest symbol allowed in a public name tag.
	MaxSymbolLength = 44

	ProjectName = "Moonwell"
	ProjectLink = "https://moonwell.fi"

	ellipsis = "..."
)

var (
	ErrEmptySymbol  = errors.New("symbol is empty")
	ErrMarkupSymbol = errors.New("symbol contains markup")

	markupPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateSymbol reports why a token symbol cannot be used in a tag.
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return ErrEmptySymbol
	}
	if markupPattern.MatchString(symbol) {
		return ErrMarkupSymbol
	}
	return nil
}

// TruncateSymbol shortens symbol to MaxSymbolLength characters, ending
// with an ellipsis when anything was cut.
func TruncateSymbol(symbol string) string {
	runes := []rune(symbol)
	if len(runes) <= MaxSymbolLength {
		return symbol
	}
	keep := MaxSymbolLength - len(ellipsis)
	return string(runes[:keep]) + ellipsis
}

// ContractAddress builds a CAIP-10 style address for a token on chainID.
func ContractAddress(chainID, tokenID string) string {
	return fmt.Sprintf("eip155:%s:%s", chainID, tokenID)
}

// BuildTag maps a validated market to its tag.
func BuildTag(chainID string, market model.Market) model.Tag {
	token := market.OutputToken
	return model.Tag{
		ContractAddress: ContractAddress(chainID, token.ID),
		PublicNameTag:   TruncateSymbol(token.Symbol) + " Token",
		ProjectName:     ProjectName,
		UIWebsiteLink:   ProjectLink,
		PublicNote:      fmt.Sprintf("The %s (%s) token for the %s protocol.", token.Name, token.Symbol, ProjectName),
	}
}
