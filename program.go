package cauce

import "fmt"

// Uniform names declared by the pipeline shaders.
const (
	UniformModelMatrix        = "u_mat_modelado"
	UniformViewMatrix         = "u_mat_vista"
	UniformProjectionMatrix   = "u_mat_proyeccion"
	UniformNormalMatrix       = "u_mat_modelado_nor"
	UniformEvalLighting       = "u_eval_mil"
	UniformEvalTexture        = "u_eval_text"
	UniformNumLights          = "u_num_luces"
	UniformLightPosDir        = "u_pos_dir_luz_ec"
	UniformLightColor         = "u_color_luz"
	UniformMaterialKa         = "u_mil_ka"
	UniformMaterialKd         = "u_mil_kd"
	UniformMaterialKs         = "u_mil_ks"
	UniformMaterialExp        = "u_mil_exp"
	UniformParamS             = "u_param_s"
	UniformTexCoordGen        = "u_tipo_gct"
	UniformCoefsS             = "u_coefs_s"
	UniformCoefsT             = "u_coefs_t"
	UniformUseTriangleNormals = "u_usar_normales_tri"
)

// shaderProgram is the ready state of the pipeline: a linked program and the
// locations of its uniforms. The pipeline holds a nil *shaderProgram until
// Activate succeeds.
type shaderProgram struct {
	id ProgramID

	modelMat, viewMat, projMat, normalMat Location
	evalLighting, evalTexture             Location
	numLights, lightPosDir, lightColor    Location
	ka, kd, ks, exp                       Location
	paramS                                Location
	texGen, coefsS, coefsT                Location
	useTriNormals                         Location
}

func compileProgram(dev Device, log Logger, vertexSrc, fragmentSrc string) (*shaderProgram, error) {
	id, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProgram, err)
	}
	if id == 0 {
		return nil, fmt.Errorf("%w: device returned a zero handle", ErrProgram)
	}

	p := &shaderProgram{id: id}
	loc := func(name string) Location {
		l := dev.UniformLocation(id, name)
		if l == InvalidLocation {
			log.Warnf("uniform %q not found in program %d", name, id)
		}
		return l
	}
	p.modelMat = loc(UniformModelMatrix)
	p.viewMat = loc(UniformViewMatrix)
	p.projMat = loc(UniformProjectionMatrix)
	p.normalMat = loc(UniformNormalMatrix)
	p.evalLighting = loc(UniformEvalLighting)
	p.evalTexture = loc(UniformEvalTexture)
	p.numLights = loc(UniformNumLights)
	p.lightPosDir = loc(UniformLightPosDir)
	p.lightColor = loc(UniformLightColor)
	p.ka = loc(UniformMaterialKa)
	p.kd = loc(UniformMaterialKd)
	p.ks = loc(UniformMaterialKs)
	p.exp = loc(UniformMaterialExp)
	p.paramS = loc(UniformParamS)
	p.texGen = loc(UniformTexCoordGen)
	p.coefsS = loc(UniformCoefsS)
	p.coefsT = loc(UniformCoefsT)
	p.useTriNormals = loc(UniformUseTriangleNormals)
	log.Infof("shader program %d linked", id)
	return p, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
