package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

// UnmarshalConf returns the koanf unmarshal settings for decoding into out.
// Durations decode from strings like "10s", and a comma separated string
// decodes into a list, so CAPILINT_LINT__DISABLED=A,B works from the
// environment.
func UnmarshalConf(out any) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           out,
		},
	}
}
