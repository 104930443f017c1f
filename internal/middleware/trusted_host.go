package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Hostヘッダが許可リストにあるか確認する。
// "*" は全部許可、"*.example.com" はサブドメインを許可。
func TrustedHosts(allowed []string) echo.MiddlewareFunc {
	patterns := make([]string, 0, len(allowed))
	anyHost := false
	for _, h := range allowed {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if h == "*" {
			anyHost = true
		}
		patterns = append(patterns, h)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if anyHost {
				return next(c)
			}
			host := hostOnly(c.Request().Host)
			for _, p := range patterns {
				if hostMatches(p, host) {
					return next(c)
				}
			}
			return c.JSON(http.StatusBadRequest, errorJSON("invalid host header"))
		}
	}
}

func hostOnly(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return strings.ToLower(strings.Trim(host, "[]"))
}

func hostMatches(pattern, host string) bool {
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return pattern == host
}
