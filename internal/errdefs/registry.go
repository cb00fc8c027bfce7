package errdefs

import "net/http"

// definitions mirror the centralized registry the API contract documents:
// stable code, category, severity, human title, suggested fix, HTTP status.
var definitions = map[Code]Definition{
	ValMissingField:     {ValMissingField, CategoryValidation, SeverityError, "Required Field Missing", "Add the required field to your data", http.StatusBadRequest},
	ValInvalidType:      {ValInvalidType, CategoryValidation, SeverityError, "Invalid Field Type", "Change the field to the correct data type", http.StatusBadRequest},
	ValInvalidEmail:     {ValInvalidEmail, CategoryValidation, SeverityError, "Invalid Email Format", "Use format like 'user@domain.com'", http.StatusBadRequest},
	ValInvalidPhone:     {ValInvalidPhone, CategoryValidation, SeverityWarning, "Invalid Phone Format", "Use format like '(555) 123-4567' or '+1 (555) 123-4567'", http.StatusBadRequest},
	ValInvalidURL:       {ValInvalidURL, CategoryValidation, SeverityWarning, "Invalid URL Format", "Use format like 'https://domain.com'", http.StatusBadRequest},
	ValInvalidDate:      {ValInvalidDate, CategoryValidation, SeverityError, "Invalid Date Format", "Use format like 'YYYY-MM' or 'YYYY-MM-DD'", http.StatusBadRequest},
	ValTooLong:          {ValTooLong, CategoryValidation, SeverityError, "Field Value Too Long", "Shorten the field value", http.StatusBadRequest},
	ValTooShort:         {ValTooShort, CategoryValidation, SeverityError, "Field Value Too Short", "Lengthen the field value", http.StatusBadRequest},
	ValInvalidEnum:      {ValInvalidEnum, CategoryValidation, SeverityError, "Invalid Enum Value", "Use one of the allowed values", http.StatusBadRequest},
	ValSchemaFailed:     {ValSchemaFailed, CategoryValidation, SeverityError, "Schema Validation Failed", "Check your data against the document schema", http.StatusBadRequest},
	ValNormalizeFailed:  {ValNormalizeFailed, CategoryValidation, SeverityError, "Data Normalization Failed", "Check the reported field for malformed content", http.StatusBadRequest},
	ValMarkupInjection:  {ValMarkupInjection, CategoryValidation, SeverityError, "Markup Injection Detected", "Remove markup control sequences from text fields", http.StatusBadRequest},
	ValInvalidJSON:      {ValInvalidJSON, CategoryValidation, SeverityError, "Invalid JSON Structure", "Check your request body for JSON syntax errors", http.StatusBadRequest},
	ValInvalidYAML:      {ValInvalidYAML, CategoryValidation, SeverityError, "Invalid YAML Structure", "Check the YAML payload for syntax errors", http.StatusBadRequest},
	ValLevelUnsupported: {ValLevelUnsupported, CategoryValidation, SeverityError, "Validation Level Not Supported", "Use a supported validation level", http.StatusBadRequest},

	TplNotFound:           {TplNotFound, CategoryTemplate, SeverityError, "Template Not Found", "Use one of the available templates", http.StatusNotFound},
	TplCompileFailed:      {TplCompileFailed, CategoryTemplate, SeverityError, "Template Compilation Failed", "Check the template source for errors", http.StatusInternalServerError},
	TplRenderFailed:       {TplRenderFailed, CategoryTemplate, SeverityError, "Template Rendering Failed", "Check the reported field in your data", http.StatusInternalServerError},
	TplFileCorrupted:      {TplFileCorrupted, CategoryTemplate, SeverityCritical, "Template File Corrupted", "Reinstall the template", http.StatusInternalServerError},
	TplHelperNotFound:     {TplHelperNotFound, CategoryTemplate, SeverityError, "Template Helper Not Found", "Check the template registration", http.StatusInternalServerError},
	TplDependencyMissing:  {TplDependencyMissing, CategoryTemplate, SeverityCritical, "Template Dependency Missing", "Install the missing dependency", http.StatusInternalServerError},
	TplTypstCompileFailed: {TplTypstCompileFailed, CategoryTemplate, SeverityError, "Typst Compilation Failed", "Check the diagnostic for the offending markup", http.StatusInternalServerError},
	TplPDFFailed:          {TplPDFFailed, CategoryTemplate, SeverityError, "PDF Generation Failed", "Retry; report if the failure persists", http.StatusInternalServerError},
	TplDirNotFound:        {TplDirNotFound, CategoryTemplate, SeverityCritical, "Template Directory Not Found", "Check the deployment layout", http.StatusInternalServerError},
	TplMetadataInvalid:    {TplMetadataInvalid, CategoryTemplate, SeverityError, "Template Metadata Invalid", "Fix the template registration metadata", http.StatusInternalServerError},
	TplFormatUnsupported:  {TplFormatUnsupported, CategoryTemplate, SeverityError, "Output Format Not Supported", "Use one of: pdf, typst, docx", http.StatusBadRequest},
	TplUnreplacedSection:  {TplUnreplacedSection, CategoryTemplate, SeverityError, "Unrendered Section Detected", "Report this template bug", http.StatusInternalServerError},

	APIMalformedRequest: {APIMalformedRequest, CategoryAPI, SeverityError, "Invalid Request Format", "Check the request body shape", http.StatusBadRequest},
	APIMissingParameter: {APIMissingParameter, CategoryAPI, SeverityError, "Missing Request Parameter", "Provide the required parameter", http.StatusBadRequest},
	APIInvalidParameter: {APIInvalidParameter, CategoryAPI, SeverityError, "Invalid Request Parameter", "Check the parameter value", http.StatusBadRequest},
	APIRequestTimeout:   {APIRequestTimeout, CategoryAPI, SeverityError, "Request Timeout", "Retry with a smaller document", http.StatusGatewayTimeout},
	APIRateLimited:      {APIRateLimited, CategoryAPI, SeverityWarning, "Rate Limit Exceeded", "Slow down and retry after the indicated delay", http.StatusTooManyRequests},
	APIInvalidContent:   {APIInvalidContent, CategoryAPI, SeverityError, "Invalid Content Type", "Send application/json", http.StatusUnsupportedMediaType},
	APIRequestTooLarge:  {APIRequestTooLarge, CategoryAPI, SeverityError, "Request Too Large", "Reduce the payload size", http.StatusRequestEntityTooLarge},
	APIMethodNotAllowed: {APIMethodNotAllowed, CategoryAPI, SeverityError, "Method Not Allowed", "Use a supported HTTP method", http.StatusMethodNotAllowed},
	APIAuthRequired:     {APIAuthRequired, CategoryAPI, SeverityError, "Authentication Required", "", http.StatusUnauthorized},
	APIAuthFailed:       {APIAuthFailed, CategoryAPI, SeverityError, "Authorization Failed", "", http.StatusForbidden},
	APINotFound:         {APINotFound, CategoryAPI, SeverityError, "Resource Not Found", "Check the resource identifier", http.StatusNotFound},
	APIConflict:         {APIConflict, CategoryAPI, SeverityError, "Resource Conflict", "Check the resource state", http.StatusConflict},
	APIUnavailable:      {APIUnavailable, CategoryAPI, SeverityError, "Service Unavailable", "Retry later", http.StatusServiceUnavailable},

	SysInternal:          {SysInternal, CategorySystem, SeverityCritical, "Internal Server Error", "Retry; report if the failure persists", http.StatusInternalServerError},
	SysDatabaseFailed:    {SysDatabaseFailed, CategorySystem, SeverityCritical, "Store Connection Failed", "Check the cache backend", http.StatusInternalServerError},
	SysExternalService:   {SysExternalService, CategorySystem, SeverityError, "External Service Unavailable", "Retry later", http.StatusServiceUnavailable},
	SysConfiguration:     {SysConfiguration, CategorySystem, SeverityCritical, "Configuration Error", "Check the service environment", http.StatusInternalServerError},
	SysMemory:            {SysMemory, CategorySystem, SeverityCritical, "Memory Allocation Failed", "Reduce the document size", http.StatusInternalServerError},
	SysDependencyMissing: {SysDependencyMissing, CategorySystem, SeverityCritical, "Dependency Not Found", "Check the service installation", http.StatusInternalServerError},
	SysEnvironment:       {SysEnvironment, CategorySystem, SeverityCritical, "Environment Setup Failed", "Check the service environment", http.StatusInternalServerError},
	SysInitFailed:        {SysInitFailed, CategorySystem, SeverityCritical, "Service Initialization Failed", "Check the startup logs", http.StatusInternalServerError},
	SysResourceExhausted: {SysResourceExhausted, CategorySystem, SeverityError, "Resource Exhausted", "Retry later", http.StatusServiceUnavailable},
	SysUnexpected:        {SysUnexpected, CategorySystem, SeverityCritical, "Unexpected Error", "Retry; report if the failure persists", http.StatusInternalServerError},

	SecMaliciousInput: {SecMaliciousInput, CategorySecurity, SeverityError, "Malicious Input Detected", "Remove control sequences from text fields", http.StatusBadRequest},
	SecPathTraversal:  {SecPathTraversal, CategorySecurity, SeverityError, "Path Traversal Detected", "Remove path components from input", http.StatusBadRequest},
	SecCmdInjection:   {SecCmdInjection, CategorySecurity, SeverityError, "Command Injection Detected", "Remove shell metacharacters from input", http.StatusBadRequest},
	SecUnsafeFileOp:   {SecUnsafeFileOp, CategorySecurity, SeverityError, "Unsafe File Operation", "", http.StatusBadRequest},
	SecInvalidFile:    {SecInvalidFile, CategorySecurity, SeverityError, "Invalid File Type", "", http.StatusBadRequest},
	SecOversizedInput: {SecOversizedInput, CategorySecurity, SeverityError, "Oversized Input", "Reduce the input size", http.StatusBadRequest},
	SecSuspicious:     {SecSuspicious, CategorySecurity, SeverityError, "Suspicious Pattern Detected", "Check the reported field", http.StatusBadRequest},
}

func Lookup(code Code) Definition {
	if def, ok := definitions[code]; ok {
		return def
	}
	return Definition{
		Code:       code,
		Category:   CategorySystem,
		Severity:   SeverityError,
		Title:      "Unknown Error",
		HTTPStatus: http.StatusInternalServerError,
	}
}
