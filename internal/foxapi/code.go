package foxapi

import "regexp"

// codePatterns are tried in order; the first one that matches anywhere in
// the SMS wins, even if a later pattern would match a more plausible number.
// The short 码 label (动态码, 校验码) only takes a 4 to 8 digit run, the same
// length the bare-digit fallback accepts.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`验证码[：:]\s*(\d+)`),
	regexp.MustCompile(`(?i)code[：:]\s*(\d+)`),
	regexp.MustCompile(`码[：:]\s*(\d{4,8})`),
	regexp.MustCompile(`(\d{4,8})`),
}

// ExtractCode returns the verification code found in an SMS.
// The second result is false when no pattern matched.
func ExtractCode(sms string) (string, bool) {
	for _, pattern := range codePatterns {
		if match := pattern.FindStringSubmatch(sms); len(match) > 1 && match[1] != "" {
			return match[1], true
		}
	}
	return "", false
}
