package realip

// PresetCloudflare configures extraction for apps behind Cloudflare.
func PresetCloudflare() Option {
	return Priority(ConventionCFConnectingIP)
}

// PresetAkamai configures extraction for apps behind Akamai, which sends
// True-Client-IP.
func PresetAkamai() Option {
	return Priority(ConventionTrueClientIP)
}

// PresetCloudFront configures extraction for apps behind AWS CloudFront with
// the CloudFront-Viewer-Address header enabled in the origin request policy.
func PresetCloudFront() Option {
	return Priority(ConventionCloudFrontViewerAddress)
}

// PresetFly configures extraction for apps running on Fly.io.
func PresetFly() Option {
	return Priority(ConventionFlyClientIP)
}

// PresetNginx configures extraction for apps behind an Nginx reverse proxy
// that sets X-Real-IP, falling back to the rightmost X-Forwarded-For entry.
//
// The fallback is taken only when X-Real-IP is absent.
func PresetNginx() Option {
	return func(c *config) error {
		return applyOptions(c,
			Priority(ConventionXRealIP, ConventionXForwardedFor),
			WithSecurityMode(SecurityModeStrict),
		)
	}
}
