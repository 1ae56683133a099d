// SPDX-License-Identifier: EPL-2.0

// Package protocol drives an encoder.Encoder from the message protocol of
// a recording host.
//
// The host sends Commands and receives Messages through a Poster:
//
//	init       {wavSampleRate, wavBitDepth, numberOfChannels}  -> ready
//	getBuffer                                                  -> postBuffer (if data)
//	done                                                       -> page (if data), done
//	close
//
// Audio arrives one quantum at a time, either from a processing callback
// (Worklet.Process) or inside encode commands (Worker). Both are Sinks and
// share one Controller state machine:
//
//	Uninitialized --init--> Recording --done--> Uninitialized
//	      \                     |
//	       `------close---------+------close--> Closed
//
// Quanta and data requests outside Recording are dropped silently, as are
// unknown commands. A failed init posts nothing and leaves the state as it
// was, so the host can retry.
package protocol
