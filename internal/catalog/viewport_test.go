package catalog

import "testing"

func TestClassifyViewport(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		filename string
		want     Viewport
	}{
		{"login_mobile.html", ViewportMobile},
		{"checkout-phone-v2.html", ViewportMobile},
		{"dashboard_tablet.html", ViewportTablet},
		{"landing-ipad.html", ViewportTablet},
		{"hero_desktop.html", ViewportDesktop},
		{"pricing-wide.html", ViewportDesktop},
		{"nav_375.html", ViewportMobile},
		{"nav_768.html", ViewportTablet},
		{"nav_1440.html", ViewportDesktop},
		{"plain.html", ViewportDesktop},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.filename, func(t *testing.T) {
			t.Parallel()

			if got := ClassifyViewport(tc.filename); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
