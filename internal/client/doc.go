// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive vault application runtime.
//
// It wires local storage, the keystore, vault services, the background
// worker pool and the terminal UI into a single process lifecycle.
package client
