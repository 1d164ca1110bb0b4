package ipattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		ipstr string
		want  string
	}{
		{"8.8.8.8", "Global IPv4 Address"},
		{"127.0.0.1", "Loopback IPv4 Address"},
		{"10.0.0.1", "Private IPv4 Address"},
		{"192.168.1.1", "Private IPv4 Address"},
		{"169.254.10.20", "Link Local IPv4 Address"},
		{"224.0.0.1", "Multicast IPv4 Address"},
		{"240.0.0.1", "Reserved IPv4 Address"},
		{"0.0.0.0", "Not Defined IPv4 Address"},
		{"100.64.0.1", "Unexpected IPv4 Address type. Beyond this API coverage! Search in Google :)"},
		{"::1", "Loopback IPv6 Address"},
		{"::", "Not Defined IPv6 Address"},
		{"fe80::1", "Link Local IPv6 Address"},
		{"ff02::1", "Multicast IPv6 Address"},
		{"fc00::1", "Private IPv6 Address"},
		{"2001:4860:4860::8888", "Global IPv6 Address"},
		{"100::1", "Reserved IPv6 Address"},
		{"::ffff:8.8.8.8", "Global IPv4 Address"},
	}

	for _, tt := range tests {
		t.Run(tt.ipstr, func(t *testing.T) {
			assert.Equal(t, tt.want, Fetch(tt.ipstr))
		})
	}
}

func TestFetch_NotAnIP(t *testing.T) {
	for _, ipstr := range []string{"not-an-ip", "", "999.1.1.1", "8.8.8", "1.2.3.4.5"} {
		assert.Equal(t, ErrLabel, Fetch(ipstr), "input %q", ipstr)
	}
}
