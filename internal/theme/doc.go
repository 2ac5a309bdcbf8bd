// Package theme owns the page-wide light/dark flag and resolves typed,
// immutable style bundles for it.
//
// Integration example:
//
//	holder := theme.NewHolder(theme.DetectPreference(session.Environ()), marker)
//	bundle, err := theme.Resolve(holder.Mode(), pty.Term)
//	if err != nil {
//		return err
//	}
//	navbar.SetStyle(bundle.NavbarOpaque)
//	card.SetStyle(bundle.Card)
//
// Only Holder.Toggle changes the flag; every consumer derives its styles from
// Holder.Mode at render time.
package theme
