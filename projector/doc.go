// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package projector maps discrete fleet state to visual placement.

Everything here is a pure function of its inputs.

# Placement

A building of n floors is drawn as a shaft of height 1. Offsets are
measured from the top:

	top, _ := projector.Position(floor, n)  // (n-1-floor)/n
	height, _ := projector.Extent(n)        // 1/n

The top floor sits at offset 0 and the ground floor at (n-1)/n, so a car
never extends past the bottom of the shaft.

# Motion

ClassifyMotion turns a status into display text (Idle, Moving, Doors Open),
or "" for a status outside that set. DirectionGlyph gives the travel
arrow. Project only attaches the arrow while a car is moving.

# Layout

Floors returns the hall-call column, top floor first. Every floor except
the top has an UP button and every floor except the ground has a DOWN
button; a button is active while its call is pending.
*/
package projector
