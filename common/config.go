package common

import (
	"os"

	"github.com/spf13/viper"
)

const (
	// invalid page number
	InvalidPageNum = -1
	// invalid transaction id
	InvalidTxnID = -1
	// size of a data page in bytes
	PageSize = 4096
	// serialized size of an integer column value
	IntColumnSize = 4
	// max byte length of the payload of a varchar column value
	VarcharMaxSize = 128
)

// mutable process-wide settings, overridable through LoadConfig
var (
	BufferPoolSize uint32 = 32
	DataDir        string = "."
	EnableDebug    bool   = false
)

// LoadConfig overrides the default settings from a config file if one
// exists at the given path. A missing file is not an error, the defaults
// simply stay in effect.
func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("buffer_pool_size", BufferPoolSize)
	v.SetDefault("data_dir", DataDir)
	v.SetDefault("log_level", int32(LogLevelSetting))
	v.SetDefault("enable_debug", EnableDebug)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound || os.IsNotExist(err) {
			return nil
		}
		return err
	}

	BufferPoolSize = v.GetUint32("buffer_pool_size")
	DataDir = v.GetString("data_dir")
	LogLevelSetting = LogLevel(v.GetInt32("log_level"))
	EnableDebug = v.GetBool("enable_debug")
	return nil
}
