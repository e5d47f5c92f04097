//go:build !realip_noforwarded

package realip_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abczzz13/realip"
)

func ExampleRightmostForwarded() {
	h := http.Header{}
	h.Set("Forwarded", `for=192.0.2.43, for="[2001:db8:cafe::17]:4711";proto=https`)

	ip, err := realip.RightmostForwarded(h)
	if err != nil {
		panic(err)
	}

	fmt.Println(ip)
	// Output: 2001:db8:cafe::17
}

func ExampleRightmostForwarded_obfuscated() {
	h := http.Header{}
	h.Set("Forwarded", "for=192.0.2.43, for=_hidden")

	_, err := realip.RightmostForwarded(h)

	var forwardedErr *realip.ForwardedError
	if errors.As(err, &forwardedErr) {
		fmt.Println(errors.Is(err, realip.ErrForwardedObfuscated), forwardedErr.Stanza)
	}
	// Output: true for=_hidden
}
