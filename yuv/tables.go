// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package yuv

// Precomputed matrices in color matrix order: four rows of five, the fifth
// column being the translation in [0, 1] units. The forward tables match
// MakeRGBToYUV; the reverse tables are their inverses.

var rgbToYUVTables = [Identity]Matrix{
	JPEGFull: {
		0.299, 0.587, 0.114, 0, 0,
		-0.168736, -0.331264, 0.5, 0, 0.501961,
		0.5, -0.418688, -0.081312, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	Rec601Limited: {
		0.256788, 0.504129, 0.097906, 0, 0.062745,
		-0.148223, -0.290993, 0.439216, 0, 0.501961,
		0.439216, -0.367788, -0.071427, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	Rec709Full: {
		0.2126, 0.7152, 0.0722, 0, 0,
		-0.114572, -0.385428, 0.5, 0, 0.501961,
		0.5, -0.454153, -0.045847, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	Rec709Limited: {
		0.182586, 0.614231, 0.062007, 0, 0.062745,
		-0.100644, -0.338572, 0.439216, 0, 0.501961,
		0.439216, -0.398942, -0.040274, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	BT2020_8BitFull: {
		0.2627, 0.678, 0.0593, 0, 0,
		-0.13963, -0.36037, 0.5, 0, 0.501961,
		0.5, -0.459786, -0.040214, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	BT2020_8BitLimited: {
		0.225613, 0.582282, 0.050928, 0, 0.062745,
		-0.122655, -0.31656, 0.439216, 0, 0.501961,
		0.439216, -0.40389, -0.035326, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	BT2020_10BitFull: {
		0.2627, 0.678, 0.0593, 0, 0,
		-0.13963, -0.36037, 0.5, 0, 0.500489,
		0.5, -0.459786, -0.040214, 0, 0.500489,
		0, 0, 0, 1, 0,
	},
	BT2020_10BitLimited: {
		0.224951, 0.580575, 0.050779, 0, 0.062561,
		-0.122296, -0.315632, 0.437928, 0, 0.500489,
		0.437928, -0.402706, -0.035222, 0, 0.500489,
		0, 0, 0, 1, 0,
	},
	BT2020_12BitFull: {
		0.2627, 0.678, 0.0593, 0, 0,
		-0.13963, -0.36037, 0.5, 0, 0.500122,
		0.5, -0.459786, -0.040214, 0, 0.500122,
		0, 0, 0, 1, 0,
	},
	BT2020_12BitLimited: {
		0.224787, 0.580149, 0.050742, 0, 0.062515,
		-0.122206, -0.315401, 0.437607, 0, 0.500122,
		0.437607, -0.402411, -0.035196, 0, 0.500122,
		0, 0, 0, 1, 0,
	},
	BT2020_16BitFull: {
		0.2627, 0.678, 0.0593, 0, 0,
		-0.13963, -0.36037, 0.5, 0, 0.500008,
		0.5, -0.459786, -0.040214, 0, 0.500008,
		0, 0, 0, 1, 0,
	},
	BT2020_16BitLimited: {
		0.224735, 0.580017, 0.05073, 0, 0.062501,
		-0.122178, -0.315329, 0.437507, 0, 0.500008,
		0.437507, -0.402319, -0.035188, 0, 0.500008,
		0, 0, 0, 1, 0,
	},
	FCCFull: {
		0.3, 0.59, 0.11, 0, 0,
		-0.168539, -0.331461, 0.5, 0, 0.501961,
		0.5, -0.421429, -0.078571, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	FCCLimited: {
		0.257647, 0.506706, 0.094471, 0, 0.062745,
		-0.14805, -0.291165, 0.439216, 0, 0.501961,
		0.439216, -0.370196, -0.06902, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	SMPTE240Full: {
		0.212, 0.701, 0.087, 0, 0,
		-0.116101, -0.383899, 0.5, 0, 0.501961,
		0.5, -0.444797, -0.055203, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	SMPTE240Limited: {
		0.182071, 0.602035, 0.074718, 0, 0.062745,
		-0.101987, -0.337229, 0.439216, 0, 0.501961,
		0.439216, -0.390724, -0.048492, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	YDZDXFull: {
		0, 1, 0, 0, 0,
		0, -0.5, 0.493283, 0, 0.501961,
		0.5, -0.495951, 0, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	YDZDXLimited: {
		0, 0.858824, 0, 0, 0.062745,
		0, -0.439216, 0.433315, 0, 0.501961,
		0.439216, -0.435659, 0, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	GBRFull: {
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	},
	GBRLimited: {
		0, 0.858824, 0, 0, 0.062745,
		0, 0, 0.858824, 0, 0.062745,
		0.858824, 0, 0, 0, 0.062745,
		0, 0, 0, 1, 0,
	},
	YCgCo8BitFull: {
		0.25, 0.5, 0.25, 0, 0,
		-0.25, 0.5, -0.25, 0, 0.501961,
		0.5, 0, -0.5, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	YCgCo8BitLimited: {
		0.214706, 0.429412, 0.214706, 0, 0.062745,
		-0.214706, 0.429412, -0.214706, 0, 0.501961,
		0.429412, 0, -0.429412, 0, 0.501961,
		0, 0, 0, 1, 0,
	},
	YCgCo10BitFull: {
		0.25, 0.5, 0.25, 0, 0,
		-0.25, 0.5, -0.25, 0, 0.500489,
		0.5, 0, -0.5, 0, 0.500489,
		0, 0, 0, 1, 0,
	},
	YCgCo10BitLimited: {
		0.214076, 0.428153, 0.214076, 0, 0.062561,
		-0.214076, 0.428153, -0.214076, 0, 0.500489,
		0.428153, 0, -0.428153, 0, 0.500489,
		0, 0, 0, 1, 0,
	},
	YCgCo12BitFull: {
		0.25, 0.5, 0.25, 0, 0,
		-0.25, 0.5, -0.25, 0, 0.500122,
		0.5, 0, -0.5, 0, 0.500122,
		0, 0, 0, 1, 0,
	},
	YCgCo12BitLimited: {
		0.213919, 0.427839, 0.213919, 0, 0.062515,
		-0.213919, 0.427839, -0.213919, 0, 0.500122,
		0.427839, 0, -0.427839, 0, 0.500122,
		0, 0, 0, 1, 0,
	},
	YCgCo16BitFull: {
		0.25, 0.5, 0.25, 0, 0,
		-0.25, 0.5, -0.25, 0, 0.500008,
		0.5, 0, -0.5, 0, 0.500008,
		0, 0, 0, 1, 0,
	},
	YCgCo16BitLimited: {
		0.21387, 0.427741, 0.21387, 0, 0.062501,
		-0.21387, 0.427741, -0.21387, 0, 0.500008,
		0.427741, 0, -0.427741, 0, 0.500008,
		0, 0, 0, 1, 0,
	},
}

var yuvToRGBTables = [Identity]Matrix{
	JPEGFull: {
		1, 0, 1.402, 0, -0.703749,
		1, -0.344136, -0.714136, 0, 0.531211,
		1, 1.772, 0, 0, -0.889475,
		0, 0, 0, 1, 0,
	},
	Rec601Limited: {
		1.164384, 0, 1.596027, 0, -0.874202,
		1.164384, -0.391762, -0.812968, 0, 0.531668,
		1.164384, 2.017232, 0, 0, -1.085631,
		0, 0, 0, 1, 0,
	},
	Rec709Full: {
		1, 0, 1.5748, 0, -0.790488,
		1, -0.187324, -0.468124, 0, 0.32901,
		1, 1.8556, 0, 0, -0.931439,
		0, 0, 0, 1, 0,
	},
	Rec709Limited: {
		1.164384, 0, 1.792741, 0, -0.972945,
		1.164384, -0.213249, -0.532909, 0, 0.301483,
		1.164384, 2.112402, 0, 0, -1.133402,
		0, 0, 0, 1, 0,
	},
	BT2020_8BitFull: {
		1, 0, 1.4746, 0, -0.740191,
		1, -0.164553, -0.571353, 0, 0.369396,
		1, 1.8814, 0, 0, -0.944389,
		0, 0, 0, 1, 0,
	},
	BT2020_8BitLimited: {
		1.164384, 0, 1.678674, 0, -0.915688,
		1.164384, -0.187326, -0.650424, 0, 0.347458,
		1.164384, 2.141772, 0, 0, -1.148145,
		0, 0, 0, 1, 0,
	},
	BT2020_10BitFull: {
		1, 0, 1.4746, 0, -0.738021,
		1, -0.164553, -0.571353, 0, 0.368313,
		1, 1.8814, 0, 0, -0.94162,
		0, 0, 0, 1, 0,
	},
	BT2020_10BitLimited: {
		1.167808, 0, 1.683611, 0, -0.915688,
		1.167808, -0.187877, -0.652337, 0, 0.347458,
		1.167808, 2.148072, 0, 0, -1.148145,
		0, 0, 0, 1, 0,
	},
	BT2020_12BitFull: {
		1, 0, 1.4746, 0, -0.73748,
		1, -0.164553, -0.571353, 0, 0.368043,
		1, 1.8814, 0, 0, -0.94093,
		0, 0, 0, 1, 0,
	},
	BT2020_12BitLimited: {
		1.168664, 0, 1.684846, 0, -0.915688,
		1.168664, -0.188015, -0.652816, 0, 0.347458,
		1.168664, 2.149647, 0, 0, -1.148145,
		0, 0, 0, 1, 0,
	},
	BT2020_16BitFull: {
		1, 0, 1.4746, 0, -0.737311,
		1, -0.164553, -0.571353, 0, 0.367959,
		1, 1.8814, 0, 0, -0.940714,
		0, 0, 0, 1, 0,
	},
	BT2020_16BitLimited: {
		1.168932, 0, 1.685231, 0, -0.915688,
		1.168932, -0.188058, -0.652965, 0, 0.347458,
		1.168932, 2.150139, 0, 0, -1.148145,
		0, 0, 0, 1, 0,
	},
	FCCFull: {
		1, 0, 1.4, 0, -0.702745,
		1, -0.331864, -0.711864, 0, 0.523911,
		1, 1.78, 0, 0, -0.89349,
		0, 0, 0, 1, 0,
	},
	FCCLimited: {
		1.164384, 0, 1.59375, 0, -0.873059,
		1.164384, -0.377792, -0.810381, 0, 0.523357,
		1.164384, 2.026339, 0, 0, -1.090202,
		0, 0, 0, 1, 0,
	},
	SMPTE240Full: {
		1, 0, 1.576, 0, -0.79109,
		1, -0.226622, -0.476622, 0, 0.353001,
		1, 1.826, 0, 0, -0.91658,
		0, 0, 0, 1, 0,
	},
	SMPTE240Limited: {
		1.164384, 0, 1.794107, 0, -0.973631,
		1.164384, -0.257985, -0.542583, 0, 0.328794,
		1.164384, 2.078705, 0, 0, -1.116488,
		0, 0, 0, 1, 0,
	},
	YDZDXFull: {
		0.991902, 0, 2, 0, -1.003922,
		1, 0, 0, 0, 0,
		1.013617, 2.027234, 0, 0, -1.017592,
		0, 0, 0, 1, 0,
	},
	YDZDXLimited: {
		1.154954, 0, 2.276786, 0, -1.215325,
		1.164384, 0, 0, 0, -0.073059,
		1.180239, 2.307788, 0, 0, -1.232474,
		0, 0, 0, 1, 0,
	},
	GBRFull: {
		0, 0, 1, 0, 0,
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 1, 0,
	},
	GBRLimited: {
		0, 0, 1.164384, 0, -0.073059,
		1.164384, 0, 0, 0, -0.073059,
		0, 1.164384, 0, 0, -0.073059,
		0, 0, 0, 1, 0,
	},
	YCgCo8BitFull: {
		1, -1, 1, 0, 0,
		1, 1, 0, 0, -0.501961,
		1, -1, -1, 0, 1.003922,
		0, 0, 0, 1, 0,
	},
	YCgCo8BitLimited: {
		1.164384, -1.164384, 1.164384, 0, -0.073059,
		1.164384, 1.164384, 0, 0, -0.657534,
		1.164384, -1.164384, -1.164384, 0, 1.095891,
		0, 0, 0, 1, 0,
	},
	YCgCo10BitFull: {
		1, -1, 1, 0, 0,
		1, 1, 0, 0, -0.500489,
		1, -1, -1, 0, 1.000978,
		0, 0, 0, 1, 0,
	},
	YCgCo10BitLimited: {
		1.167808, -1.167808, 1.167808, 0, -0.073059,
		1.167808, 1.167808, 0, 0, -0.657534,
		1.167808, -1.167808, -1.167808, 0, 1.09589,
		0, 0, 0, 1, 0,
	},
	YCgCo12BitFull: {
		1, -1, 1, 0, 0,
		1, 1, 0, 0, -0.500122,
		1, -1, -1, 0, 1.000244,
		0, 0, 0, 1, 0,
	},
	YCgCo12BitLimited: {
		1.168664, -1.168664, 1.168664, 0, -0.073059,
		1.168664, 1.168664, 0, 0, -0.657534,
		1.168664, -1.168664, -1.168664, 0, 1.095891,
		0, 0, 0, 1, 0,
	},
	YCgCo16BitFull: {
		1, -1, 1, 0, 0,
		1, 1, 0, 0, -0.500008,
		1, -1, -1, 0, 1.000015,
		0, 0, 0, 1, 0,
	},
	YCgCo16BitLimited: {
		1.168932, -1.168932, 1.168932, 0, -0.073059,
		1.168932, 1.168932, 0, 0, -0.657534,
		1.168932, -1.168932, -1.168932, 0, 1.09589,
		0, 0, 0, 1, 0,
	},
}
