package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CrearUsuarioRequest struct {
	IDEmpresa string  `json:"id_empresa" validate:"required,uuid"`
	Username  string  `json:"username"   validate:"required,min=3,max=40"`
	Nombre    string  `json:"nombre"     validate:"required,min=2"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Password  string  `json:"password"   validate:"required,min=8"`
	Rol       string  `json:"rol"        validate:"required,oneof=cajero supervisor administrador"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=cajero supervisor administrador"`
	Password string  `json:"password" validate:"omitempty,min=8"`
}

// ActualizarPermisosRequest carries the FULL module set the user should end
// up with. The selection is an explicit argument of the operation, never read
// from shared state. An empty set is valid and revokes everything.
type ActualizarPermisosRequest struct {
	Modulos []string `json:"modulos" validate:"dive,uuid"`
}

type ModuloResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Ruta   string `json:"ruta"`
}

type UsuarioResponse struct {
	ID        string           `json:"id"`
	IDEmpresa string           `json:"id_empresa"`
	Username  string           `json:"username"`
	Nombre    string           `json:"nombre"`
	Email     *string          `json:"email,omitempty"`
	Rol       string           `json:"rol"`
	Activo    bool             `json:"activo"`
	Modulos   []ModuloResponse `json:"modulos,omitempty"`
}
