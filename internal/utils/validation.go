package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	// Basic email shape; real validation happens when mail is sent
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateEmail validates the shape of an email address
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if len(email) > 254 {
		return errors.New("email too long (max 254 characters)")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return errors.New("password too long (max 72 characters)")
	}
	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius validates radius values for location searches
func ValidateRadius(radius float64) error {
	if radius < 0 {
		return errors.New("radius must be non-negative")
	}

	// Reasonable maximum radius of 100km for hospital searches
	if radius > 100000 {
		return errors.New("radius too large (max 100000 meters)")
	}

	return nil
}

// ValidateSpan validates latitude/longitude span values
func ValidateSpan(span float64) error {
	if span < 0 {
		return errors.New("span must be non-negative")
	}

	// Maximum span of 5 degrees (roughly 500km at equator)
	if span > 5.0 {
		return errors.New("span too large (max 5.0 degrees)")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	sanitized = strings.TrimSpace(sanitized)
	return sanitized
}

// ValidateLocationParams validates a complete set of location parameters
func ValidateLocationParams(lat, lon, radius, latSpan, lonSpan float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	if radius != 0 {
		if err := ValidateRadius(radius); err != nil {
			fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
		}
	}

	if latSpan != 0 {
		if err := ValidateSpan(latSpan); err != nil {
			fieldErrors["latSpan"] = append(fieldErrors["latSpan"], err.Error())
		}
	}

	if lonSpan != 0 {
		if err := ValidateSpan(lonSpan); err != nil {
			fieldErrors["lonSpan"] = append(fieldErrors["lonSpan"], err.Error())
		}
	}

	// Spans only define a bounding box together
	if (latSpan != 0) != (lonSpan != 0) {
		missing := "lonSpan"
		if lonSpan != 0 {
			missing = "latSpan"
		}
		fieldErrors[missing] = append(fieldErrors[missing],
			"latSpan and lonSpan must be provided together")
	}

	return fieldErrors
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
