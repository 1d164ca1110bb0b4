// Package ipattr classifies IP address strings by their network-role
// attributes. Classification is pure: bad input produces an error
// label, never an error value.
package ipattr

import (
	"fmt"
	"net/netip"
)

// ErrLabel is returned for input that is not an IPv4 or IPv6 address.
const ErrLabel = "[Error] Not IPv4 or IPv6 string format."

var (
	v4Reserved = netip.MustParsePrefix("240.0.0.0/4")
	v4Shared   = netip.MustParsePrefix("100.64.0.0/10")
	v4ZeroNet  = netip.MustParsePrefix("0.0.0.0/8")

	// IANA-reserved IPv6 blocks. Loopback, unspecified and mapped
	// addresses live outside these prefixes.
	v6Reserved = []netip.Prefix{
		netip.MustParsePrefix("100::/8"),
		netip.MustParsePrefix("200::/7"),
		netip.MustParsePrefix("400::/6"),
		netip.MustParsePrefix("800::/5"),
		netip.MustParsePrefix("1000::/4"),
		netip.MustParsePrefix("4000::/3"),
		netip.MustParsePrefix("6000::/3"),
		netip.MustParsePrefix("8000::/3"),
		netip.MustParsePrefix("a000::/3"),
		netip.MustParsePrefix("c000::/3"),
		netip.MustParsePrefix("e000::/4"),
		netip.MustParsePrefix("f000::/5"),
		netip.MustParsePrefix("f800::/6"),
		netip.MustParsePrefix("fe00::/9"),
	}
)

// Fetch parses ipstr and returns its classification label.
func Fetch(ipstr string) string {
	ip, err := netip.ParseAddr(ipstr)
	if err != nil {
		return ErrLabel
	}
	return judge(ip)
}

// judge picks the first matching attribute, most specific first.
func judge(ip netip.Addr) string {
	version := 6
	if ip.Is4() || ip.Is4In6() {
		version = 4
		ip = ip.Unmap()
	}

	switch {
	case isReserved(ip):
		return fmt.Sprintf("Reserved IPv%d Address", version)
	case ip.IsLoopback():
		return fmt.Sprintf("Loopback IPv%d Address", version)
	case ip.IsLinkLocalUnicast():
		return fmt.Sprintf("Link Local IPv%d Address", version)
	case ip.IsMulticast():
		return fmt.Sprintf("Multicast IPv%d Address", version)
	case isGlobal(ip):
		return fmt.Sprintf("Global IPv%d Address", version)
	case ip.IsPrivate():
		return fmt.Sprintf("Private IPv%d Address", version)
	case ip.IsUnspecified():
		return fmt.Sprintf("Not Defined IPv%d Address", version)
	default:
		return fmt.Sprintf("Unexpected IPv%d Address type. Beyond this API coverage! Search in Google :)", version)
	}
}

func isReserved(ip netip.Addr) bool {
	if ip.Is4() {
		return v4Reserved.Contains(ip)
	}
	for _, p := range v6Reserved {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// isGlobal reports whether the address is publicly routable. Shared
// address space (100.64.0.0/10) counts as neither global nor private.
func isGlobal(ip netip.Addr) bool {
	if ip.IsUnspecified() || ip.IsPrivate() {
		return false
	}
	if ip.Is4() && (v4Shared.Contains(ip) || v4ZeroNet.Contains(ip)) {
		return false
	}
	return true
}
