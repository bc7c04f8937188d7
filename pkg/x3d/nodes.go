package x3d

import "math"

// Shader is the hook for programmable stages. It is accepted and logged
// but never executed.
type Shader interface {
	Name() string
}

// NavigationInfo logs the headlight flag. Lighting is not modelled.
func (r *Renderer) NavigationInfo(headlight bool) {
	Logger().Info("x3d: NavigationInfo", "headlight", headlight)
}

// DirectionalLight logs the light. Lighting is not modelled.
func (r *Renderer) DirectionalLight(ambientIntensity float64, color []float64, intensity float64, direction []float64) {
	Logger().Info("x3d: DirectionalLight",
		"ambientIntensity", ambientIntensity, "color", color,
		"intensity", intensity, "direction", direction)
}

// PointLight logs the light. Lighting is not modelled.
func (r *Renderer) PointLight(ambientIntensity float64, color []float64, intensity float64, location []float64) {
	Logger().Info("x3d: PointLight",
		"ambientIntensity", ambientIntensity, "color", color,
		"intensity", intensity, "location", location)
}

// Fog logs the fog parameters.
func (r *Renderer) Fog(visibilityRange float64, color []float64) {
	Logger().Info("x3d: Fog", "visibilityRange", visibilityRange, "color", color)
}

// TimeSensor returns the fraction of the current cycle, (now mod cycle) /
// cycle, using the renderer clock. A non-positive cycle yields 0.
func (r *Renderer) TimeSensor(cycleInterval float64, loop bool) float64 {
	if !(cycleInterval > 0) || math.IsInf(cycleInterval, 0) {
		return 0
	}
	now := r.clock()
	epoch := float64(now.Unix()) + float64(now.Nanosecond())/1e9
	fraction := math.Mod(epoch, cycleInterval) / cycleInterval
	Logger().Info("x3d: TimeSensor", "cycleInterval", cycleInterval, "loop", loop, "fraction", fraction)
	return fraction
}

// SplinePositionInterpolator logs its inputs and returns the origin.
// Animation is not evaluated.
func (r *Renderer) SplinePositionInterpolator(setFraction float64, key, keyValue []float64, closed bool) [3]float64 {
	Logger().Info("x3d: SplinePositionInterpolator",
		"setFraction", setFraction, "key", key, "keyValue", keyValue, "closed", closed)
	return [3]float64{0, 0, 0}
}

// OrientationInterpolator logs its inputs and returns the zero rotation.
// Animation is not evaluated.
func (r *Renderer) OrientationInterpolator(setFraction float64, key, keyValue []float64) [4]float64 {
	Logger().Info("x3d: OrientationInterpolator",
		"setFraction", setFraction, "key", key, "keyValue", keyValue)
	return [4]float64{0, 0, 1, 0}
}

// VertexShader accepts a vertex stage.
func (r *Renderer) VertexShader(s Shader) {
	Logger().Info("x3d: VertexShader", "shader", shaderName(s))
}

// FragmentShader accepts a fragment stage.
func (r *Renderer) FragmentShader(s Shader) {
	Logger().Info("x3d: FragmentShader", "shader", shaderName(s))
}

func shaderName(s Shader) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
