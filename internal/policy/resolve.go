package policy

import "backdrop/internal/domain"

// Resolve maps a resolution input to the image reference the page should
// display. It is a pure function: stateless, idempotent, evaluated fresh
// on every call.
//
// Priority order:
//  1. An explicit override wins unconditionally.
//  2. No mode (page excluded from theming): mobile pages still get the
//     dark mobile entry, desktop pages get the neutral fallback.
//  3. Mode present and the path is not excluded: the normal catalog
//     lookup.
//  4. Mode present but the path is excluded (a resize or toggle fired
//     after navigating into an excluded page): same neutral rule as
//     branch 2, so an excluded page never shows a stale desktop-class
//     image after a mobile-to-desktop transition.
func Resolve(in domain.Input, path string, cat *domain.Catalog, excl Exclusions) domain.ImageRef {
	if !in.Override.IsZero() {
		return in.Override
	}

	if !in.HasMode {
		return neutral(in.Class, cat)
	}

	if !excl.Matches(path) {
		return cat.Lookup(in.Mode, in.Class)
	}

	return neutral(in.Class, cat)
}

// neutral is the mode-less rule shared by branches 2 and 4: a
// mode-appropriate mobile image, a neutral desktop one.
func neutral(class domain.DeviceClass, cat *domain.Catalog) domain.ImageRef {
	if class == domain.Mobile {
		return cat.Lookup(domain.Dark, domain.Mobile)
	}
	return cat.Fallback()
}
