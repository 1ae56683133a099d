// SPDX-License-Identifier: EPL-2.0

// Command wavepcm records audio files and websocket streams into PCM WAVE.
package main

func main() {
	Execute()
}
