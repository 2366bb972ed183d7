package ua

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name, raw, device string
		bot               bool
	}{
		{"empty", "", "other", false},
		{"desktop chrome",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
			"desktop", false},
		{"iphone safari",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			"mobile", false},
		{"googlebot",
			"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			"bot", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.raw)
			if got.Device != tc.device {
				t.Errorf("Device = %q, want %q", got.Device, tc.device)
			}
			if got.IsBot != tc.bot {
				t.Errorf("IsBot = %v, want %v", got.IsBot, tc.bot)
			}
		})
	}
}
