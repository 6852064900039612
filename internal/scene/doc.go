// Package scene turns a config.Config into a populated physics.World.
//
// A config either lists its bodies, constraints and emitters explicitly or
// names a generator ("stack", "billiards", ...) registered in [Registry]. A
// generator expands into explicit entries first, so both paths share one
// builder and a generated scene can be exported and edited as YAML.
package scene
