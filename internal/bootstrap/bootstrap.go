package bootstrap

func Init() {
	InitConfig()
	Log()
}
