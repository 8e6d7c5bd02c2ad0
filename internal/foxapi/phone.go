package foxapi

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhoneNumber is returned when a leased number cannot be parsed.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

func (p *PhoneLease) parse() (*phonenumbers.PhoneNumber, error) {
	mobile := strings.TrimSpace(p.Mobile)
	if mobile == "" {
		return nil, ErrInvalidPhoneNumber
	}

	var (
		num *phonenumbers.PhoneNumber
		err error
	)
	dial := strings.TrimLeft(strings.TrimSpace(p.CountryDialCode), "+")
	switch {
	case strings.HasPrefix(mobile, "+"):
		num, err = phonenumbers.Parse(mobile, "")
	case dial != "" && !strings.HasPrefix(mobile, dial):
		num, err = phonenumbers.Parse("+"+dial+mobile, "")
	case dial != "":
		num, err = phonenumbers.Parse("+"+mobile, "")
	default:
		num, err = phonenumbers.Parse(mobile, strings.ToUpper(p.CountryCode))
	}
	if err != nil {
		return nil, ErrInvalidPhoneNumber
	}
	return num, nil
}

// E164 formats the leased number as +<dial code><number>.
func (p *PhoneLease) E164() (string, error) {
	num, err := p.parse()
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Region returns the ISO 3166-1 alpha-2 region of the leased number, or "".
func (p *PhoneLease) Region() string {
	num, err := p.parse()
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(num)
}
