package model

type Environment string

const (
	EnvironmentMainnet Environment = "MAINNET"
	EnvironmentDevnet  Environment = "DEVNET"
)

var AllEnvironment = []Environment{
	EnvironmentMainnet,
	EnvironmentDevnet,
}

func (e Environment) IsValid() bool {
	switch e {
	case EnvironmentMainnet, EnvironmentDevnet:
		return true
	}
	return false
}

func (e Environment) String() string {
	return string(e)
}
