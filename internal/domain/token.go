package domain

// TokenKind classifies one tagged unit of table-cell text.
type TokenKind string

const (
	TokenTuroyo      TokenKind = "turoyo"
	TokenTranslation TokenKind = "translation"
	TokenReference   TokenKind = "reference"
	TokenNote        TokenKind = "note"
	TokenPunct       TokenKind = "punct"
)

func (k TokenKind) String() string { return string(k) }

func (k TokenKind) IsValid() bool {
	switch k {
	case TokenTuroyo, TokenTranslation, TokenReference, TokenNote, TokenPunct:
		return true
	}
	return false
}

// Token is one tagged unit of cell text. Text holds the literal
// substring, quotes and brackets included, so that concatenating all
// tokens of a cell reproduces the cell's normalized text.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}
