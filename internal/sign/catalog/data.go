package catalog

// builtinSections is the embedded subset of the AISC Shapes Database v16.0
// covering the pipe, square HSS, and W families used for sign poles. Depth
// is the outside diameter for pipes and the nominal face width for HSS.
// Fy and Grade are resolved at lookup time from the requested steel grade.
func builtinSections() []SectionProperties {
	return []SectionProperties{
		// Pipe, ASTM A53 Grade B
		{Designation: "PIPE3STD", Family: FamilyPipe, AreaIn2: 2.07, WeightPLF: 7.58, SxIn3: 1.63, IxIn4: 2.85, RxIn: 1.17, DepthIn: 3.50},
		{Designation: "PIPE4STD", Family: FamilyPipe, AreaIn2: 2.96, WeightPLF: 10.79, SxIn3: 3.03, IxIn4: 6.82, RxIn: 1.51, DepthIn: 4.50},
		{Designation: "PIPE5STD", Family: FamilyPipe, AreaIn2: 4.03, WeightPLF: 14.62, SxIn3: 5.14, IxIn4: 14.3, RxIn: 1.88, DepthIn: 5.56},
		{Designation: "PIPE6STD", Family: FamilyPipe, AreaIn2: 5.20, WeightPLF: 18.97, SxIn3: 7.99, IxIn4: 26.5, RxIn: 2.25, DepthIn: 6.63},
		{Designation: "PIPE6XS", Family: FamilyPipe, AreaIn2: 7.88, WeightPLF: 28.57, SxIn3: 11.6, IxIn4: 38.3, RxIn: 2.20, DepthIn: 6.63},
		{Designation: "PIPE8STD", Family: FamilyPipe, AreaIn2: 7.85, WeightPLF: 28.55, SxIn3: 15.8, IxIn4: 68.1, RxIn: 2.95, DepthIn: 8.63},
		{Designation: "PIPE8XS", Family: FamilyPipe, AreaIn2: 11.9, WeightPLF: 43.39, SxIn3: 23.1, IxIn4: 99.4, RxIn: 2.89, DepthIn: 8.63},
		{Designation: "PIPE10STD", Family: FamilyPipe, AreaIn2: 11.1, WeightPLF: 40.48, SxIn3: 28.1, IxIn4: 151, RxIn: 3.68, DepthIn: 10.8},
		{Designation: "PIPE12STD", Family: FamilyPipe, AreaIn2: 13.6, WeightPLF: 49.56, SxIn3: 41.0, IxIn4: 262, RxIn: 4.38, DepthIn: 12.8},

		// Square HSS, ASTM A500 Grade B
		{Designation: "HSS3X3X1/4", Family: FamilyHSS, AreaIn2: 2.44, WeightPLF: 8.81, SxIn3: 2.01, IxIn4: 3.02, RxIn: 1.11, DepthIn: 3.00},
		{Designation: "HSS4X4X3/16", Family: FamilyHSS, AreaIn2: 2.58, WeightPLF: 9.42, SxIn3: 3.10, IxIn4: 6.21, RxIn: 1.55, DepthIn: 4.00},
		{Designation: "HSS4X4X1/4", Family: FamilyHSS, AreaIn2: 3.37, WeightPLF: 12.21, SxIn3: 3.90, IxIn4: 7.80, RxIn: 1.52, DepthIn: 4.00},
		{Designation: "HSS5X5X1/4", Family: FamilyHSS, AreaIn2: 4.30, WeightPLF: 15.62, SxIn3: 6.41, IxIn4: 16.0, RxIn: 1.93, DepthIn: 5.00},
		{Designation: "HSS6X6X1/4", Family: FamilyHSS, AreaIn2: 5.24, WeightPLF: 19.02, SxIn3: 9.54, IxIn4: 28.6, RxIn: 2.34, DepthIn: 6.00},
		{Designation: "HSS6X6X3/8", Family: FamilyHSS, AreaIn2: 7.58, WeightPLF: 27.48, SxIn3: 13.2, IxIn4: 39.5, RxIn: 2.28, DepthIn: 6.00},
		{Designation: "HSS8X8X1/4", Family: FamilyHSS, AreaIn2: 7.10, WeightPLF: 25.82, SxIn3: 17.7, IxIn4: 70.7, RxIn: 3.15, DepthIn: 8.00},
		{Designation: "HSS8X8X3/8", Family: FamilyHSS, AreaIn2: 10.4, WeightPLF: 37.69, SxIn3: 25.1, IxIn4: 100, RxIn: 3.10, DepthIn: 8.00},
		{Designation: "HSS8X8X1/2", Family: FamilyHSS, AreaIn2: 13.5, WeightPLF: 48.85, SxIn3: 31.2, IxIn4: 125, RxIn: 3.04, DepthIn: 8.00},
		{Designation: "HSS10X10X3/8", Family: FamilyHSS, AreaIn2: 13.2, WeightPLF: 47.90, SxIn3: 40.4, IxIn4: 202, RxIn: 3.92, DepthIn: 10.0},
		{Designation: "HSS10X10X1/2", Family: FamilyHSS, AreaIn2: 17.2, WeightPLF: 62.46, SxIn3: 51.2, IxIn4: 256, RxIn: 3.86, DepthIn: 10.0},
		{Designation: "HSS12X12X3/8", Family: FamilyHSS, AreaIn2: 16.0, WeightPLF: 58.10, SxIn3: 59.5, IxIn4: 357, RxIn: 4.73, DepthIn: 12.0},
		{Designation: "HSS12X12X1/2", Family: FamilyHSS, AreaIn2: 21.0, WeightPLF: 76.07, SxIn3: 76.2, IxIn4: 457, RxIn: 4.66, DepthIn: 12.0},

		// W-shapes, ASTM A992
		{Designation: "W6X15", Family: FamilyW, AreaIn2: 4.43, WeightPLF: 15.0, SxIn3: 9.72, IxIn4: 29.1, RxIn: 2.56, DepthIn: 5.99},
		{Designation: "W8X18", Family: FamilyW, AreaIn2: 5.26, WeightPLF: 18.0, SxIn3: 15.2, IxIn4: 61.9, RxIn: 3.43, DepthIn: 8.14},
		{Designation: "W8X24", Family: FamilyW, AreaIn2: 7.08, WeightPLF: 24.0, SxIn3: 20.9, IxIn4: 82.7, RxIn: 3.42, DepthIn: 7.93},
		{Designation: "W10X26", Family: FamilyW, AreaIn2: 7.61, WeightPLF: 26.0, SxIn3: 27.9, IxIn4: 144, RxIn: 4.35, DepthIn: 10.3},
		{Designation: "W10X33", Family: FamilyW, AreaIn2: 9.71, WeightPLF: 33.0, SxIn3: 35.0, IxIn4: 171, RxIn: 4.19, DepthIn: 9.73},
		{Designation: "W12X26", Family: FamilyW, AreaIn2: 7.65, WeightPLF: 26.0, SxIn3: 33.4, IxIn4: 204, RxIn: 5.17, DepthIn: 12.2},
		{Designation: "W12X35", Family: FamilyW, AreaIn2: 10.3, WeightPLF: 35.0, SxIn3: 45.6, IxIn4: 285, RxIn: 5.25, DepthIn: 12.5},
		{Designation: "W14X43", Family: FamilyW, AreaIn2: 12.6, WeightPLF: 43.0, SxIn3: 62.6, IxIn4: 428, RxIn: 5.82, DepthIn: 13.7},
		{Designation: "W16X50", Family: FamilyW, AreaIn2: 14.7, WeightPLF: 50.0, SxIn3: 81.0, IxIn4: 659, RxIn: 6.68, DepthIn: 16.3},
	}
}
