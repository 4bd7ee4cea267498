package navigation

import "testing"

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current View
		request View
		session bool
		want    View
	}{
		{"public page stays public", ViewHome, ViewBlog, false, ViewBlog},
		{"hub gated without session", ViewHome, ViewHub, false, ViewLogin},
		{"hub reachable with session", ViewHome, ViewHub, true, ViewHub},
		{"profile gated without session", ViewBlog, ViewProfile, false, ViewLogin},
		{"edit profile gated without session", ViewProfile, ViewEditProfile, false, ViewLogin},
		{"login with session goes to hub", ViewHome, ViewLogin, true, ViewHub},
		{"signup with session goes to hub", ViewHome, ViewSignup, true, ViewHub},
		{"login without session stays login", ViewHome, ViewLogin, false, ViewLogin},
		{"unknown request keeps current", ViewPartners, View("bogus"), true, ViewPartners},
		{"unknown request and current falls home", View(""), View("bogus"), false, ViewHome},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Transition(c.current, c.request, c.session); got != c.want {
				t.Errorf("Transition(%q, %q, %v) = %q, want %q", c.current, c.request, c.session, got, c.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !Valid(ViewHowItWorks) {
		t.Error("how-it-works should be a valid view")
	}
	if Valid(View("dashboard")) {
		t.Error("dashboard is not a view")
	}
}
