package cli

import (
	"github.com/spf13/cobra"

	"github.com/darkroom-dev/darkroom/internal/app"
	"github.com/darkroom-dev/darkroom/internal/settings"
	"github.com/darkroom-dev/darkroom/internal/ui"
)

var developFlags struct {
	preset       int
	quality      string
	settingsFile string

	contrast         float64
	exposure         float64
	temperature      float64
	tint             float64
	colorBoost       float64
	grain            float64
	bloom            float64
	halation         float64
	vignetteExposure float64
	vignetteSize     float64
	vignetteFeather  float64
}

var developCmd = &cobra.Command{
	Use:   "develop <path>",
	Short: "Develop a file or a directory of files with a film preset",
	Long: `Develop processes one image, or every supported image of a directory, with
the chosen film preset. Without --preset an interactive picker opens.
Adjustment and effect flags override values from the settings file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		base := settings.Default()
		if developFlags.settingsFile != "" {
			base, err = settings.LoadFile(developFlags.settingsFile)
			if err != nil {
				return err
			}
		}
		s := base.Apply(developOverrides(cmd))

		presetNumber := developFlags.preset
		if presetNumber == 0 {
			presetNumber, err = pickPreset(cmd, a)
			if err != nil {
				return err
			}
		}

		return a.Develop(cmd.Context(), args[0], app.DevelopOptions{
			PresetNumber: presetNumber,
			Quality:      developFlags.quality,
			Settings:     s,
		})
	},
}

// developOverrides collects only the flags the user actually supplied, so
// unset flags leave the base settings untouched.
func developOverrides(cmd *cobra.Command) settings.Overrides {
	var o settings.Overrides
	set := func(name string, target **float64, value *float64) {
		if cmd.Flags().Changed(name) {
			*target = value
		}
	}
	set("set-contrast", &o.Contrast, &developFlags.contrast)
	set("set-exposure", &o.Exposure, &developFlags.exposure)
	set("set-temperature", &o.Temperature, &developFlags.temperature)
	set("set-tint", &o.Tint, &developFlags.tint)
	set("set-color-boost", &o.ColorBoost, &developFlags.colorBoost)
	set("set-grain", &o.Grain, &developFlags.grain)
	set("set-bloom", &o.Bloom, &developFlags.bloom)
	set("set-halation", &o.Halation, &developFlags.halation)
	set("set-vignette-exposure", &o.VignetteExposure, &developFlags.vignetteExposure)
	set("set-vignette-size", &o.VignetteSize, &developFlags.vignetteSize)
	set("set-vignette-feather", &o.VignetteFeather, &developFlags.vignetteFeather)
	return o
}

// pickPreset opens the interactive picker and returns a 1-based preset
// number.
func pickPreset(cmd *cobra.Command, a *app.App) (int, error) {
	presets, err := a.Client.AvailablePresets(cmd.Context())
	if err != nil {
		return 0, err
	}
	captions := make([]string, len(presets))
	creators := make([]string, len(presets))
	for i, preset := range presets {
		captions[i] = preset.Caption
		creators[i] = preset.Creator
	}
	index, err := ui.PickPreset(captions, creators)
	if err != nil {
		return 0, err
	}
	return index + 1, nil
}

func init() {
	flags := developCmd.Flags()
	flags.IntVarP(&developFlags.preset, "preset", "p", 0, "preset number (see the presets command)")
	flags.StringVarP(&developFlags.quality, "quality", "q", "low", "image quality level ['low', 'medium', 'high']")
	flags.StringVar(&developFlags.settingsFile, "settings-file", "", "TOML settings file")

	flags.Float64VarP(&developFlags.contrast, "set-contrast", "c", 0, "contrast setting (adjustments)")
	flags.Float64VarP(&developFlags.exposure, "set-exposure", "e", 0, "exposure setting (adjustments)")
	flags.Float64VarP(&developFlags.temperature, "set-temperature", "t", 0, "temperature setting (adjustments)")
	flags.Float64VarP(&developFlags.tint, "set-tint", "i", 0, "tint setting (adjustments)")
	flags.Float64Var(&developFlags.colorBoost, "set-color-boost", 0, "color boost setting (adjustments)")
	flags.Float64VarP(&developFlags.grain, "set-grain", "g", 0, "grain setting (effects)")
	flags.Float64VarP(&developFlags.bloom, "set-bloom", "b", 0, "bloom setting (effects)")
	flags.Float64Var(&developFlags.halation, "set-halation", 0, "halation setting (effects)")
	flags.Float64Var(&developFlags.vignetteExposure, "set-vignette-exposure", 0, "vignette exposure setting (effects)")
	flags.Float64Var(&developFlags.vignetteSize, "set-vignette-size", 0, "vignette size setting (effects)")
	flags.Float64Var(&developFlags.vignetteFeather, "set-vignette-feather", 0, "vignette feather setting (effects)")

	rootCmd.AddCommand(developCmd)
}
