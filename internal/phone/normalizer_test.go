package phone

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "truedial/pkg/domain-errors"
)

type NormalizerSuite struct {
	suite.Suite
	norm *Normalizer
}

func TestNormalizerSuite(t *testing.T) {
	suite.Run(t, new(NormalizerSuite))
}

func (s *NormalizerSuite) SetupTest() {
	s.norm = NewNormalizer("IN")
}

func (s *NormalizerSuite) TestEquivalentInputsConverge() {
	inputs := []string{
		"9876543210",
		"+91 98765 43210",
		"91-9876543210",
		"(91) 98765 43210",
		"+919876543210",
	}
	for _, in := range inputs {
		key, err := s.norm.Normalize(in)
		s.Require().NoError(err, "input %q", in)
		s.Equal("+919876543210", key.Canonical(), "input %q", in)
	}
}

func (s *NormalizerSuite) TestIdempotence() {
	key, err := s.norm.Normalize("98765 43210")
	s.Require().NoError(err)

	again, err := s.norm.Normalize(key.Canonical())
	s.Require().NoError(err)
	s.Equal(key.Canonical(), again.Canonical())
	s.Equal(key.Variants(), again.Variants())
}

func (s *NormalizerSuite) TestVariants() {
	key, err := s.norm.Normalize("+919876543210")
	s.Require().NoError(err)
	s.Equal([]string{"+919876543210", "919876543210", "9876543210"}, key.Variants())
}

func (s *NormalizerSuite) TestOtherRegion() {
	us := NewNormalizer("US")
	key, err := us.Normalize("(212) 555-0123")
	s.Require().NoError(err)
	s.Equal("+12125550123", key.Canonical())
}

func (s *NormalizerSuite) TestFailures() {
	s.Run("empty input", func() {
		_, err := s.norm.Normalize("   ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})

	s.Run("too short", func() {
		_, err := s.norm.Normalize("12345")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
		s.Contains(err.Error(), "too short")
	})

	s.Run("too long", func() {
		_, err := s.norm.Normalize("98765432109876543210")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})

	s.Run("not a number", func() {
		_, err := s.norm.Normalize("hello")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidPhone))
	})
}
