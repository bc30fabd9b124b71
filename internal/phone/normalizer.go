// Package phone canonicalizes raw phone-number input into an E.164 key and
// generates the alternate textual forms used for lookups against stored data
// that may predate normalization.
package phone

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	dErrors "truedial/pkg/domain-errors"
)

// Key is a canonical phone number. Equality for search purposes is defined
// over the variant set, not raw string equality.
type Key struct {
	canonical string
	national  string
}

// Canonical returns the E.164 form: leading +, country calling code, national
// number, no separators.
func (k Key) Canonical() string { return k.canonical }

func (k Key) String() string { return k.canonical }

// Variants returns the acceptable alternate textual forms of the key, in
// stable order: canonical, canonical without the leading +, and the bare
// national-subscriber number. These exist solely so lookups can match
// historically stored raw-format numbers.
func (k Key) Variants() []string {
	variants := []string{k.canonical, strings.TrimPrefix(k.canonical, "+")}
	if k.national != "" && k.national != variants[1] {
		variants = append(variants, k.national)
	}
	return variants
}

// separators covers the characters stripped before parsing: whitespace,
// hyphens, and both parentheses.
var separators = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")

// Normalizer parses raw phone input against the international numbering plan,
// assuming defaultRegion when no explicit country code is present.
type Normalizer struct {
	defaultRegion string
}

func NewNormalizer(defaultRegion string) *Normalizer {
	return &Normalizer{defaultRegion: defaultRegion}
}

// Normalize canonicalizes raw input into a Key. All failures carry the
// invalid_phone code; the message distinguishes too-short, too-long, bad
// country code, and unparseable input where the parser exposes that.
func (n *Normalizer) Normalize(raw string) (Key, error) {
	cleaned := separators.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return Key{}, dErrors.New(dErrors.CodeInvalidPhone, "phone number is empty")
	}

	parsed, err := phonenumbers.Parse(cleaned, n.defaultRegion)
	if err != nil {
		switch {
		case errors.Is(err, phonenumbers.ErrInvalidCountryCode):
			return Key{}, dErrors.Wrap(err, dErrors.CodeInvalidPhone, "bad country code")
		case errors.Is(err, phonenumbers.ErrNotANumber):
			return Key{}, dErrors.Wrap(err, dErrors.CodeInvalidPhone, "unparseable phone number")
		default:
			return Key{}, dErrors.Wrap(err, dErrors.CodeInvalidPhone, "could not parse phone number")
		}
	}

	if !phonenumbers.IsValidNumber(parsed) {
		switch phonenumbers.IsPossibleNumberWithReason(parsed) {
		case phonenumbers.TOO_SHORT:
			return Key{}, dErrors.Newf(dErrors.CodeInvalidPhone, "phone number %q is too short", raw)
		case phonenumbers.TOO_LONG:
			return Key{}, dErrors.Newf(dErrors.CodeInvalidPhone, "phone number %q is too long", raw)
		case phonenumbers.INVALID_COUNTRY_CODE:
			return Key{}, dErrors.Newf(dErrors.CodeInvalidPhone, "phone number %q has a bad country code", raw)
		default:
			return Key{}, dErrors.Newf(dErrors.CodeInvalidPhone, "phone number %q is not valid for its region", raw)
		}
	}

	return Key{
		canonical: phonenumbers.Format(parsed, phonenumbers.E164),
		national:  strconv.FormatUint(parsed.GetNationalNumber(), 10),
	}, nil
}
