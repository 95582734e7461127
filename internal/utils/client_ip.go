package utils

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the sentinel used when no usable address can be
// extracted from the request. Rate limiting still applies to it, so a
// proxy misconfiguration degrades to one shared bucket instead of none.
const UnknownClient = "unknown"

// GetClientIP extracts the best client address from typical forwarding
// headers or RemoteAddr, falling back to UnknownClient.
func GetClientIP(r *http.Request) string {
	if ip := detectIP(r); ip != "" {
		return ip
	}
	return UnknownClient
}

// detectIP extracts the best IP address from typical headers or RemoteAddr.
func detectIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		for _, ip := range ips {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	cfConnectingIP := r.Header.Get("CF-Connecting-IP")
	if cfConnectingIP != "" && isValidIP(cfConnectingIP) {
		return cfConnectingIP
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" && isValidIP(realIP) {
		return realIP
	}

	forwarded := r.Header.Get("Forwarded")
	if forwarded != "" {
		parts := strings.Split(forwarded, ";")
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "for=") {
				maybeIP := strings.TrimPrefix(part, "for=")
				maybeIP = strings.Trim(maybeIP, "\"")
				if isValidIP(maybeIP) {
					return maybeIP
				}
			}
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
