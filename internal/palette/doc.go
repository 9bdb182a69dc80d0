// Package palette manages the color presentation of the wind rose layers.
//
// A palette assigns each height layer a display name, a 9-color ramp (one
// color per speed bin) and a blend mode. Three palettes are built in;
// custom palettes are YAML files discovered in a palettes directory and can
// be hot-reloaded with Watch.
//
// Color math (parsing, alpha compositing, blend modes) is done with
// go-colorful so the terminal and vector back ends composite identically.
package palette
