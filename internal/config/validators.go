package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Validator normalizes a raw value or reports why it cannot be used. It is
// never called with an empty value.
type Validator func(value string) (string, error)

func positiveInt(value string) (string, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("must be a positive integer")
	}
	return strconv.Itoa(n), nil
}

func boolean(value string) (string, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return "true", nil
	case "0", "false", "no", "off":
		return "false", nil
	}
	return "", fmt.Errorf("must be one of 1, true, yes, on, 0, false, no, off")
}

func duration(value string) (string, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return "", fmt.Errorf("must be a positive duration such as 30s or 2m")
	}
	return d.String(), nil
}

func oneOf(allowed ...string) Validator {
	return func(value string) (string, error) {
		v := strings.ToLower(value)
		if !slices.Contains(allowed, v) {
			return "", fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return v, nil
	}
}

// httpURL accepts absolute http(s) URLs and drops a trailing slash so paths
// can be appended.
func httpURL(value string) (string, error) {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("must be an http(s) URL")
	}
	return strings.TrimSuffix(value, "/"), nil
}

// basePath makes a mount path begin and end with "/".
func basePath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "?# ") {
		return "", fmt.Errorf("must be a plain path")
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	if !strings.HasSuffix(value, "/") {
		value += "/"
	}
	return value, nil
}
