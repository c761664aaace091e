package instruction

import (
	"strings"
	"unicode"
)

// Instruction is one validated step of a Dockerfile.
//
// The set of implementations is closed: only the types declared in this
// package satisfy it, so a type switch over them is exhaustive.
type Instruction interface {
	Kind() Kind
	instruction()
}

type ADD struct {
	Resources []string // sources followed by the destination
	ResourceOptions
}

type ARG struct {
	Key     string
	Default *string // nil when the ARG has no default value
}

type CMD struct {
	Form Form
}

type COMMENT struct {
	Text string
}

type COPY struct {
	Resources []string // sources followed by the destination
	CopyOptions
}

type ENTRYPOINT struct {
	Form Form
}

type ENV struct {
	Key, Value string
}

type ESCAPE struct {
	Char rune
}

type EXPOSE struct {
	Ports []string
}

type FROM struct {
	BaseImage string
	FromOptions
}

type HEALTHCHECK struct {
	HealthcheckOptions
	Cmd Form // zero when no command is set
}

type LABEL struct {
	Key, Value string
}

type ONBUILD struct {
	Trigger Instruction
}

type RUN struct {
	Form Form
	RunOptions
}

type SHELL struct {
	Args []string
}

type STOPSIGNAL struct {
	Signal string
}

type USER struct {
	User, Group string
}

type VOLUME struct {
	Paths []string
}

type WORKDIR struct {
	Path string
}

func (ADD) Kind() Kind         { return KindADD }
func (ARG) Kind() Kind         { return KindARG }
func (CMD) Kind() Kind         { return KindCMD }
func (COMMENT) Kind() Kind     { return KindCOMMENT }
func (COPY) Kind() Kind        { return KindCOPY }
func (ENTRYPOINT) Kind() Kind  { return KindENTRYPOINT }
func (ENV) Kind() Kind         { return KindENV }
func (ESCAPE) Kind() Kind      { return KindESCAPE }
func (EXPOSE) Kind() Kind      { return KindEXPOSE }
func (FROM) Kind() Kind        { return KindFROM }
func (HEALTHCHECK) Kind() Kind { return KindHEALTHCHECK }
func (LABEL) Kind() Kind       { return KindLABEL }
func (ONBUILD) Kind() Kind     { return KindONBUILD }
func (RUN) Kind() Kind         { return KindRUN }
func (SHELL) Kind() Kind       { return KindSHELL }
func (STOPSIGNAL) Kind() Kind  { return KindSTOPSIGNAL }
func (USER) Kind() Kind        { return KindUSER }
func (VOLUME) Kind() Kind      { return KindVOLUME }
func (WORKDIR) Kind() Kind     { return KindWORKDIR }

func (ADD) instruction()         {}
func (ARG) instruction()         {}
func (CMD) instruction()         {}
func (COMMENT) instruction()     {}
func (COPY) instruction()        {}
func (ENTRYPOINT) instruction()  {}
func (ENV) instruction()         {}
func (ESCAPE) instruction()      {}
func (EXPOSE) instruction()      {}
func (FROM) instruction()        {}
func (HEALTHCHECK) instruction() {}
func (LABEL) instruction()       {}
func (ONBUILD) instruction()     {}
func (RUN) instruction()         {}
func (SHELL) instruction()       {}
func (STOPSIGNAL) instruction()  {}
func (USER) instruction()        {}
func (VOLUME) instruction()      {}
func (WORKDIR) instruction()     {}

// NewADD creates an ADD instruction. The first len(resources)-1 entries are
// sources and the last one is the destination in the image.
func NewADD(resources []string, opts ResourceOptions) (ADD, error) {
	res, err := checkResources(KindADD, resources)
	if err != nil {
		return ADD{}, err
	}
	return ADD{Resources: res, ResourceOptions: opts}, nil
}

// NewARG creates an ARG instruction without a default value.
func NewARG(key string) (ARG, error) {
	if err := checkKey(KindARG, key); err != nil {
		return ARG{}, err
	}
	return ARG{Key: key}, nil
}

// NewARGWithDefault creates an ARG instruction rendered as key=value. An empty
// value is kept and differs from having no default.
func NewARGWithDefault(key, value string) (ARG, error) {
	arg, err := NewARG(key)
	if err != nil {
		return ARG{}, err
	}
	if err := checkSingleLine(KindARG, "value", value); err != nil {
		return ARG{}, err
	}
	arg.Default = &value
	return arg, nil
}

// NewCMD creates a CMD instruction in exec, default or shell form.
func NewCMD(form Form) (CMD, error) {
	f, err := checkForm(KindCMD, form, ExecForm, DefaultForm, ShellForm)
	if err != nil {
		return CMD{}, err
	}
	return CMD{Form: f}, nil
}

// NewCOMMENT creates a single comment line.
func NewCOMMENT(text string) (COMMENT, error) {
	if strings.ContainsAny(text, "\r\n") {
		return COMMENT{}, Invalid(ReasonArguments, KindCOMMENT, "text must be a single line")
	}
	return COMMENT{Text: text}, nil
}

// NewCOPY creates a COPY instruction. The first len(resources)-1 entries are
// sources and the last one is the destination in the image.
func NewCOPY(resources []string, opts CopyOptions) (COPY, error) {
	res, err := checkResources(KindCOPY, resources)
	if err != nil {
		return COPY{}, err
	}
	if opts.From != "" && strings.TrimSpace(opts.From) == "" {
		return COPY{}, Invalid(ReasonArguments, KindCOPY, "--from must name a stage or index")
	}
	return COPY{Resources: res, CopyOptions: opts}, nil
}

// NewENTRYPOINT creates an ENTRYPOINT instruction in exec or shell form.
func NewENTRYPOINT(form Form) (ENTRYPOINT, error) {
	f, err := checkForm(KindENTRYPOINT, form, ExecForm, ShellForm)
	if err != nil {
		return ENTRYPOINT{}, err
	}
	return ENTRYPOINT{Form: f}, nil
}

// NewENV creates an ENV instruction setting a single variable.
func NewENV(key, value string) (ENV, error) {
	if err := checkPair(KindENV, key, value); err != nil {
		return ENV{}, err
	}
	return ENV{Key: key, Value: value}, nil
}

// NewESCAPE creates the escape parser directive. Only the characters the
// Dockerfile grammar accepts, a backslash or a backtick, are allowed.
func NewESCAPE(char rune) (ESCAPE, error) {
	if char != '\\' && char != '`' {
		return ESCAPE{}, Invalid(ReasonArguments, KindESCAPE, "invalid escape character %q, must be ` or \\", char)
	}
	return ESCAPE{Char: char}, nil
}

// NewEXPOSE creates an EXPOSE instruction over one or more port specs such
// as "80" or "53/udp".
func NewEXPOSE(ports []string) (EXPOSE, error) {
	p, err := checkEntries(KindEXPOSE, "port spec", ports)
	if err != nil {
		return EXPOSE{}, err
	}
	for _, port := range p {
		if strings.IndexFunc(port, unicode.IsSpace) >= 0 {
			return EXPOSE{}, Invalid(ReasonArguments, KindEXPOSE, "port spec %q must not contain whitespace", port)
		}
	}
	return EXPOSE{Ports: p}, nil
}

// NewFROM creates a FROM instruction. The base image is kept as written so
// that build ARG references such as ${BASE} survive.
func NewFROM(baseImage string, opts FromOptions) (FROM, error) {
	if err := checkRequired(KindFROM, "base image", baseImage); err != nil {
		return FROM{}, err
	}
	if strings.IndexFunc(opts.As, unicode.IsSpace) >= 0 {
		return FROM{}, Invalid(ReasonArguments, KindFROM, "stage name %q must not contain whitespace", opts.As)
	}
	return FROM{BaseImage: baseImage, FromOptions: opts}, nil
}

// NewHEALTHCHECK creates a HEALTHCHECK instruction. A zero cmd leaves the
// command out; otherwise it must be a shell form (one command string) or an
// exec form.
func NewHEALTHCHECK(opts HealthcheckOptions, cmd Form) (HEALTHCHECK, error) {
	if cmd.IsZero() {
		return HEALTHCHECK{HealthcheckOptions: opts}, nil
	}
	f, err := checkForm(KindHEALTHCHECK, cmd, ExecForm, ShellForm)
	if err != nil {
		return HEALTHCHECK{}, err
	}
	return HEALTHCHECK{HealthcheckOptions: opts, Cmd: f}, nil
}

// NewLABEL creates a LABEL instruction for a single key/value pair.
func NewLABEL(key, value string) (LABEL, error) {
	if err := checkPair(KindLABEL, key, value); err != nil {
		return LABEL{}, err
	}
	return LABEL{Key: key, Value: value}, nil
}

// NewONBUILD wraps trigger in an ONBUILD instruction. FROM, COMMENT, ESCAPE
// and ONBUILD itself cannot be triggers.
func NewONBUILD(trigger Instruction) (ONBUILD, error) {
	if trigger == nil {
		return ONBUILD{}, Invalid(ReasonOnbuild, KindONBUILD, "trigger instruction is required")
	}
	if !AllowedInOnbuild(trigger.Kind()) {
		return ONBUILD{}, Invalid(ReasonOnbuild, KindONBUILD, "%s is not allowed as a trigger instruction", trigger.Kind())
	}
	return ONBUILD{Trigger: trigger}, nil
}

// NewRUN creates a RUN instruction in exec or shell form.
func NewRUN(form Form, opts RunOptions) (RUN, error) {
	f, err := checkForm(KindRUN, form, ExecForm, ShellForm)
	if err != nil {
		return RUN{}, err
	}
	opts.Mounts = copyStrings(opts.Mounts)
	return RUN{Form: f, RunOptions: opts}, nil
}

// NewSHELL creates a SHELL instruction, e.g. ["/bin/bash", "-c"].
func NewSHELL(args []string) (SHELL, error) {
	if len(args) < 1 {
		return SHELL{}, Invalid(ReasonArguments, KindSHELL, "requires at least 1 entry")
	}
	return SHELL{Args: copyStrings(args)}, nil
}

func NewSTOPSIGNAL(signal string) (STOPSIGNAL, error) {
	if err := checkRequired(KindSTOPSIGNAL, "signal", signal); err != nil {
		return STOPSIGNAL{}, err
	}
	return STOPSIGNAL{Signal: signal}, nil
}

// NewUSER creates a USER instruction. group is optional.
func NewUSER(user, group string) (USER, error) {
	if err := checkRequired(KindUSER, "user", user); err != nil {
		return USER{}, err
	}
	if strings.ContainsRune(user, ':') {
		return USER{}, Invalid(ReasonArguments, KindUSER, "user %q must not contain ':', pass the group separately", user)
	}
	return USER{User: user, Group: group}, nil
}

func NewVOLUME(paths []string) (VOLUME, error) {
	p, err := checkEntries(KindVOLUME, "volume", paths)
	if err != nil {
		return VOLUME{}, err
	}
	return VOLUME{Paths: p}, nil
}

func NewWORKDIR(path string) (WORKDIR, error) {
	if err := checkRequired(KindWORKDIR, "path", path); err != nil {
		return WORKDIR{}, err
	}
	return WORKDIR{Path: path}, nil
}

func checkRequired(kind Kind, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(ReasonArguments, kind, "%s must not be empty", field)
	}
	return nil
}

// checkKey accepts keys that survive rendering as a single key=value word.
func checkKey(kind Kind, key string) error {
	if err := checkRequired(kind, "key", key); err != nil {
		return err
	}
	if strings.ContainsRune(key, '=') || strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return Invalid(ReasonArguments, kind, "key %q must not contain '=' or whitespace", key)
	}
	return nil
}

func checkSingleLine(kind Kind, field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return Invalid(ReasonArguments, kind, "%s must not span multiple lines", field)
	}
	return nil
}

func checkPair(kind Kind, key, value string) error {
	if err := checkKey(kind, key); err != nil {
		return err
	}
	return checkSingleLine(kind, "value", value)
}

func checkResources(kind Kind, resources []string) ([]string, error) {
	if len(resources) < 2 {
		return nil, Invalid(ReasonArguments, kind, "requires at least 1 source and 1 destination, got %d resource(s)", len(resources))
	}
	return checkEntries(kind, "resource", resources)
}

func checkEntries(kind Kind, name string, values []string) ([]string, error) {
	if len(values) < 1 {
		return nil, Invalid(ReasonArguments, kind, "requires at least 1 %s", name)
	}
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return nil, Invalid(ReasonArguments, kind, "%s %d must not be empty", name, i+1)
		}
	}
	return copyStrings(values), nil
}
