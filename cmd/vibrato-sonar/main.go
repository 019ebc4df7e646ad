// Command vibrato-sonar measures vibrato in monophonic vocal recordings.
//
// Usage:
//
//	vibrato-sonar analyze recording.wav
//	vibrato-sonar analyze --pretty -o report.json take3.flac
//	vibrato-sonar probe recording.wav
//	vibrato-sonar config init > vibrato-sonar.yaml
//
// The analyze command decodes the recording with FFmpeg, tracks the
// fundamental frequency and loudness, and prints a JSON report of the
// detected vibrato cycles.
package main

func main() {
	Execute()
}
