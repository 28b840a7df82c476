package mw

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// hostOnly strips the port from "ip:port" and "[v6]:port".
func hostOnly(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// ClientIP resolves the caller address. Behind a trusted proxy it prefers
// CF-Connecting-IP, then the left-most X-Forwarded-For entry, then X-Real-IP;
// otherwise it only reads RemoteAddr.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		for _, v := range []string{r.Header.Get("CF-Connecting-IP"), xff, r.Header.Get("X-Real-IP")} {
			if v = strings.TrimSpace(v); v != "" {
				return hostOnly(v)
			}
		}
	}
	return hostOnly(r.RemoteAddr)
}

// ipMatcher matches single addresses and prefixes.
type ipMatcher struct {
	prefixes []netip.Prefix
}

func newIPMatcher(list []string) *ipMatcher {
	m := &ipMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			m.prefixes = append(m.prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return m
}

func (m *ipMatcher) empty() bool { return len(m.prefixes) == 0 }

func (m *ipMatcher) allow(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
