package renderer

// Program names. On-disk overrides use <name>.vs and <name>.fs.
const (
	ShaderSkybox   = "skybox"
	ShaderObject   = "object"
	ShaderSun      = "sun"
	ShaderDepthMap = "depth_map"
	ShaderDebug    = "debug"
	ShaderHDR      = "hdr"
	ShaderBlur     = "blur"
)

// Texture units. Each program samples at most two units so the assignment
// only has to be unique within a program.
const (
	UnitSkybox     uint32 = 0
	UnitDiffuse    uint32 = 0
	UnitBlurSource uint32 = 0
	UnitScene      uint32 = 0
	UnitBloom      uint32 = 1
	UnitShadowMap  uint32 = 10
)

type shaderSource struct {
	vertex   string
	fragment string
}

var builtinShaders = map[string]shaderSource{
	ShaderSkybox:   {skyboxVertexSource, skyboxFragmentSource},
	ShaderObject:   {objectVertexSource, objectFragmentSource},
	ShaderSun:      {sunVertexSource, sunFragmentSource},
	ShaderDepthMap: {depthMapVertexSource, depthMapFragmentSource},
	ShaderDebug:    {quadVertexSource, debugFragmentSource},
	ShaderHDR:      {quadVertexSource, hdrFragmentSource},
	ShaderBlur:     {quadVertexSource, blurFragmentSource},
}

var skyboxVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;

out vec3 TexCoords;

uniform mat4 projection;
uniform mat4 view;

void main()
{
    TexCoords = aPos;
    vec4 pos = projection * view * vec4(aPos, 1.0);
    // z = w puts every fragment on the far plane
    gl_Position = pos.xyww;
}
`

var skyboxFragmentSource = `#version 330 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

in vec3 TexCoords;

uniform samplerCube skyboxTexture;

void main()
{
    FragColor = texture(skyboxTexture, TexCoords);
    BrightColor = vec4(0.0, 0.0, 0.0, 1.0);
}
`

var objectVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoords;
layout (location = 2) in vec3 aNormal;

out VS_OUT {
    vec3 FragPos;
    vec3 Normal;
    vec2 TexCoords;
    vec4 FragPosLightSpace;
} vs_out;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform mat4 lightSpaceMatrix;

void main()
{
    vs_out.FragPos = vec3(model * vec4(aPos, 1.0));
    vs_out.Normal = transpose(inverse(mat3(model))) * aNormal;
    vs_out.TexCoords = aTexCoords;
    vs_out.FragPosLightSpace = lightSpaceMatrix * vec4(vs_out.FragPos, 1.0);
    gl_Position = projection * view * vec4(vs_out.FragPos, 1.0);
}
`

var objectFragmentSource = `#version 330 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

struct PointLight {
    vec3 position;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct DirLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

in VS_OUT {
    vec3 FragPos;
    vec3 Normal;
    vec2 TexCoords;
    vec4 FragPosLightSpace;
} fs_in;

uniform sampler2D texture_diffuse1;
uniform sampler2D shadowMap;
uniform bool hasTexture;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;

uniform vec3 viewPos;
uniform int objectNum;
uniform PointLight sunLight;
uniform DirLight rightLight;
uniform DirLight leftLight;
uniform DirLight backLight;

float ShadowCalculation(vec4 fragPosLightSpace, vec3 normal, vec3 lightDir)
{
    vec3 projCoords = fragPosLightSpace.xyz / fragPosLightSpace.w;
    projCoords = projCoords * 0.5 + 0.5;
    if (projCoords.z > 1.0)
        return 0.0;
    float currentDepth = projCoords.z;
    float bias = max(0.005 * (1.0 - dot(normal, lightDir)), 0.0005);

    float shadow = 0.0;
    vec2 texelSize = 1.0 / textureSize(shadowMap, 0);
    for (int x = -1; x <= 1; ++x)
    {
        for (int y = -1; y <= 1; ++y)
        {
            float pcfDepth = texture(shadowMap, projCoords.xy + vec2(x, y) * texelSize).r;
            shadow += currentDepth - bias > pcfDepth ? 1.0 : 0.0;
        }
    }
    return shadow / 9.0;
}

vec3 CalcDirLight(DirLight light, vec3 normal, vec3 viewDir, vec3 albedo)
{
    vec3 lightDir = normalize(-light.direction);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 halfwayDir = normalize(lightDir + viewDir);
    float spec = pow(max(dot(normal, halfwayDir), 0.0), shininess);
    return light.ambient * albedo + light.diffuse * diff * albedo + light.specular * spec * specularColor;
}

void main()
{
    vec3 albedo = diffuseColor;
    if (hasTexture)
        albedo *= texture(texture_diffuse1, fs_in.TexCoords).rgb;

    vec3 normal = normalize(fs_in.Normal);
    vec3 viewDir = normalize(viewPos - fs_in.FragPos);

    // sun
    vec3 lightDir = normalize(sunLight.position - fs_in.FragPos);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 halfwayDir = normalize(lightDir + viewDir);
    float spec = pow(max(dot(normal, halfwayDir), 0.0), shininess);
    float shadow = ShadowCalculation(fs_in.FragPosLightSpace, normal, lightDir);
    vec3 result = sunLight.ambient * albedo
        + (1.0 - shadow) * (sunLight.diffuse * diff * albedo + sunLight.specular * spec * specularColor);

    result += CalcDirLight(rightLight, normal, viewDir, albedo);
    result += CalcDirLight(leftLight, normal, viewDir, albedo);
    result += CalcDirLight(backLight, normal, viewDir, albedo);

    // water gets a fresnel-like rim so the sun glint feeds the bright pass
    if (objectNum == 2)
    {
        float rim = pow(1.0 - max(dot(normal, viewDir), 0.0), 3.0);
        result += rim * sunLight.specular * 0.5;
    }

    FragColor = vec4(result, 1.0);
    float brightness = dot(result, vec3(0.2126, 0.7152, 0.0722));
    BrightColor = brightness > 1.0 ? vec4(result, 1.0) : vec4(0.0, 0.0, 0.0, 1.0);
}
`

var sunVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
`

var sunFragmentSource = `#version 330 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

void main()
{
    vec3 color = vec3(12.0, 10.0, 6.0);
    FragColor = vec4(color, 1.0);
    BrightColor = vec4(color, 1.0);
}
`

var depthMapVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;

uniform mat4 lightSpaceMatrix;
uniform mat4 model;

void main()
{
    gl_Position = lightSpaceMatrix * model * vec4(aPos, 1.0);
}
`

var depthMapFragmentSource = `#version 330 core

void main()
{
}
`

var quadVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoords;

out vec2 TexCoords;

void main()
{
    TexCoords = aTexCoords;
    gl_Position = vec4(aPos, 1.0);
}
`

var debugFragmentSource = `#version 330 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D depthMap;
uniform float near_plane;
uniform float far_plane;
uniform bool perspective;

float LinearizeDepth(float depth)
{
    float z = depth * 2.0 - 1.0;
    return (2.0 * near_plane * far_plane) / (far_plane + near_plane - z * (far_plane - near_plane));
}

void main()
{
    float depthValue = texture(depthMap, TexCoords).r;
    if (perspective)
        FragColor = vec4(vec3(LinearizeDepth(depthValue) / far_plane), 1.0);
    else
        FragColor = vec4(vec3(depthValue), 1.0);
}
`

var blurFragmentSource = `#version 330 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D image;
uniform bool horizontal;
uniform float weight[5] = float[] (0.2270270270, 0.1945945946, 0.1216216216, 0.0540540541, 0.0162162162);

void main()
{
    vec2 tex_offset = 1.0 / textureSize(image, 0);
    vec3 result = texture(image, TexCoords).rgb * weight[0];
    if (horizontal)
    {
        for (int i = 1; i < 5; ++i)
        {
            result += texture(image, TexCoords + vec2(tex_offset.x * i, 0.0)).rgb * weight[i];
            result += texture(image, TexCoords - vec2(tex_offset.x * i, 0.0)).rgb * weight[i];
        }
    }
    else
    {
        for (int i = 1; i < 5; ++i)
        {
            result += texture(image, TexCoords + vec2(0.0, tex_offset.y * i)).rgb * weight[i];
            result += texture(image, TexCoords - vec2(0.0, tex_offset.y * i)).rgb * weight[i];
        }
    }
    FragColor = vec4(result, 1.0);
}
`

var hdrFragmentSource = `#version 330 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D scene;
uniform sampler2D bloomBlur;
uniform bool bloom;
uniform float exposure;

void main()
{
    const float gamma = 2.2;
    vec3 hdrColor = texture(scene, TexCoords).rgb;
    if (bloom)
        hdrColor += texture(bloomBlur, TexCoords).rgb;
    vec3 result = vec3(1.0) - exp(-hdrColor * exposure);
    result = pow(result, vec3(1.0 / gamma));
    FragColor = vec4(result, 1.0);
}
`
