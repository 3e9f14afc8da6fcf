package installer

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) telegramEnabled() bool {
	return s.EnvVars["COVBOT_ENABLE_TELEGRAM"] == "true"
}
