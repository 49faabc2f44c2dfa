// Package assets manages the compile output tree: it prepares a clean
// output directory and consolidates the media files a deck references into
// its assets subdirectory.
//
// [Prepare] is destructive: any existing output directory is removed before
// being recreated, so every compile starts from an empty tree.
//
// [Consolidate] copies each referenced media file into the assets directory,
// keeping only its base name, and rewrites the slide's media path to
// "assets/<name>". Two different sources with the same base name collide:
// the later slide's file wins and a warning is logged.
package assets
