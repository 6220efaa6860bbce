package contracts

// InputFlags carries the validated command-line surface into the batch core.
type InputFlags struct {
	InputRootDir string
	OutputDir    string
	Extensions   []string
	UseGPU       bool
	Sequential   bool
	ConfigPath   string
}
