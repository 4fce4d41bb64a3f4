// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package roaring implements a Roaring Bitmap: a compressed container for
// sets of uint32 values that adapts its internal representation (sorted
// array, dense bitmap or run-length intervals) to the density of each
// 65536-wide window of the value space.
package roaring
