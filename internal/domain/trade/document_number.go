package trade

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// DocumentKind identifies which day-sequence a document number is drawn from
type DocumentKind string

const (
	DocumentKindInvoice  DocumentKind = "INV"
	DocumentKindPurchase DocumentKind = "PUR"
	DocumentKindReturn   DocumentKind = "RET"
)

// IsValid checks if the kind is a known DocumentKind
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindInvoice, DocumentKindPurchase, DocumentKindReturn:
		return true
	}
	return false
}

// String returns the number prefix for the kind
func (k DocumentKind) String() string {
	return string(k)
}

// dayFormat is the YYMMDD segment embedded in every document number
const dayFormat = "060102"

var documentNumberPattern = regexp.MustCompile(`^(INV|PUR|RET)-(\d{6})(\d{4,})$`)

// FormatDocumentNumber renders a document number as PREFIX-YYMMDDSSSS.
// The sequence tail is zero-padded to four digits and widens beyond 9999.
func FormatDocumentNumber(kind DocumentKind, day time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%s%04d", kind, day.Format(dayFormat), sequence)
}

// ParseDocumentNumber splits a document number into its kind, day and
// sequence parts. Used for validation and compatibility checks.
func ParseDocumentNumber(number string) (DocumentKind, time.Time, int64, error) {
	m := documentNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", time.Time{}, 0, shared.NewDomainErrorf("INVALID_INPUT", "Malformed document number %q", number)
	}
	day, err := time.Parse(dayFormat, m[2])
	if err != nil {
		return "", time.Time{}, 0, shared.NewDomainErrorf("INVALID_INPUT", "Malformed document number %q", number)
	}
	var seq int64
	if _, err := fmt.Sscanf(m[3], "%d", &seq); err != nil {
		return "", time.Time{}, 0, shared.NewDomainErrorf("INVALID_INPUT", "Malformed document number %q", number)
	}
	return DocumentKind(m[1]), day, seq, nil
}

// DocumentSequenceRepository allocates document number sequences.
//
// Next must be an exactly-once, monotonically-increasing allocation per
// (owner, kind, day): concurrent callers never observe the same value. The
// persistence implementation uses a dedicated counter row mutated with a
// single atomic upsert increment rather than deriving the sequence from the
// most recent document number.
type DocumentSequenceRepository interface {
	Next(ctx context.Context, ownerID uuid.UUID, kind DocumentKind, day time.Time) (int64, error)
}

// NumberGenerator produces the next human-readable document number for a
// given owning user and document kind, based on the current date.
type NumberGenerator struct {
	sequences DocumentSequenceRepository
	now       func() time.Time
}

// NewNumberGenerator creates a NumberGenerator backed by the given sequence
// repository
func NewNumberGenerator(sequences DocumentSequenceRepository) *NumberGenerator {
	return &NumberGenerator{
		sequences: sequences,
		now:       time.Now,
	}
}

// WithClock overrides the generator clock; used by tests
func (g *NumberGenerator) WithClock(now func() time.Time) *NumberGenerator {
	g.now = now
	return g
}

// Next allocates the next document number for the owner and kind
func (g *NumberGenerator) Next(ctx context.Context, ownerID uuid.UUID, kind DocumentKind) (string, error) {
	if !kind.IsValid() {
		return "", shared.NewDomainErrorf("INVALID_INPUT", "Unknown document kind %q", kind)
	}

	day := g.now()
	seq, err := g.sequences.Next(ctx, ownerID, kind, day)
	if err != nil {
		return "", err
	}
	return FormatDocumentNumber(kind, day, seq), nil
}
