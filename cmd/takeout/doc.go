// Command takeout repairs Google Takeout exports: it reconciles truncated
// media filenames against their JSON sidecars and writes sidecar metadata
// back into the media files through exiftool.
package main
