// Package discovery finds application-server installation roots on the host.
// It combines two strategies. The running-instance Locator walks upward from
// the files held open by server processes. The installed-instance Scanner
// searches a bounded number of directory levels below a set of scan roots.
// Both recognise an installation by its signature directory
// (modules/system/layers/base) and report the directory above it.
package discovery
