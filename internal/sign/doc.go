// Package sign produces and checks integrity sidecars for packaged artifacts.
//
// For an artifact "procyon-1.0.0-win-x64.zip" the package writes
//
//	procyon-1.0.0-win-x64.zip.sha256   "<hex>  procyon-1.0.0-win-x64.zip\n"
//	procyon-1.0.0-win-x64.zip.asc      armored OpenPGP detached signature
//
// Signing is optional and only happens when a private key is supplied.
package sign
