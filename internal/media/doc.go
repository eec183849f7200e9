// Package media models the export's media collection: one Record per logical
// media item, plus scanning helpers that discover media files under the
// archive root while ignoring their JSON sidecars.
package media
