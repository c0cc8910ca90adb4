// Package audio plays the optional chime that marks an annotation reaching
// full visibility. It uses the beep library to decode WAV, OGG and MP3 files
// or to synthesize a built-in tone, with linear volume control.
package audio
