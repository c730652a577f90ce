package parameter

// Spring-damper per corner
const (
	// SpringRate in N/m
	SpringRate = 32000.0

	// SpringDamping in N·s/m
	SpringDamping = 2800.0

	// SpringRestCompression is the preload offset in m; static compression adds load/rate
	SpringRestCompression = 0.02

	// SpringMaxCompression is the bump travel limit in m
	SpringMaxCompression = 0.26

	// SpringMaxExtension is the droop travel limit in m
	SpringMaxExtension = 0.12
)

// Weight transfer
const (
	// TransferMaxFraction caps each transfer to this fraction of static weight
	TransferMaxFraction = 0.35

	// TransferLongFrontBias scales the longitudinal swing seen by each front wheel
	TransferLongFrontBias = 1.15

	// TransferLongRearBias scales the longitudinal swing seen by each rear wheel
	TransferLongRearBias = 0.85

	// TransferLatFrontBias scales the lateral swing seen by each front wheel
	TransferLatFrontBias = 0.85

	// TransferLatRearBias scales the lateral swing seen by each rear wheel
	TransferLatRearBias = 1.15
)
