// Package catalog keeps the app's predefined toast messages in YAML so
// handlers show them by key instead of repeating literal strings:
//
//	msgs := catalog.Default()
//	if _, err := msgs.Show(queue, "auth.welcome_back", user.Email); err != nil {
//	    return err
//	}
//
// Deployments can override or extend the embedded catalog:
//
//	custom, err := catalog.Load("/etc/toastd/messages.yaml")
//	if err != nil {
//	    return err
//	}
//	msgs = catalog.Default().Merge(custom)
package catalog
