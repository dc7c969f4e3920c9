package server

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"
)

//go:embed interpreter.proto
var interpreterProto string

const (
	protoFileName = "basic/v1/interpreter.proto"

	ServiceName = "basic.v1.Interpreter"
	MethodRun   = "Run"
	MethodReset = "Reset"
)

// FullMethod returns the gRPC path of a method, e.g. /basic.v1.Interpreter/Run.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var (
	serviceOnce sync.Once
	serviceDesc *desc.ServiceDescriptor
	serviceErr  error
)

// LoadService parses the embedded schema once and checks that every message
// has the fields the handlers read and write.
func LoadService() (*desc.ServiceDescriptor, error) {
	serviceOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: protoparse.FileContentsFromMap(map[string]string{
				protoFileName: interpreterProto,
			}),
		}
		fds, err := parser.ParseFiles(protoFileName)
		if err != nil {
			serviceErr = fmt.Errorf("failed to parse proto: %w", err)
			return
		}
		sd := fds[0].FindService(ServiceName)
		if sd == nil {
			serviceErr = fmt.Errorf("service %s not found in %s", ServiceName, protoFileName)
			return
		}
		if err := checkService(sd); err != nil {
			serviceErr = err
			return
		}
		serviceDesc = sd
	})
	return serviceDesc, serviceErr
}

const (
	typeString = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeBool   = descriptorpb.FieldDescriptorProto_TYPE_BOOL
)

var messageFields = map[string]map[string]descriptorpb.FieldDescriptorProto_Type{
	"basic.v1.RunRequest": {
		"session_id":  typeString,
		"source_name": typeString,
		"source":      typeString,
	},
	"basic.v1.RunResponse": {
		"session_id": typeString,
		"value":      typeString,
		"value_kind": typeString,
		"error":      typeString,
		"output":     typeString,
	},
	"basic.v1.ResetRequest": {
		"session_id": typeString,
	},
	"basic.v1.ResetResponse": {
		"existed": typeBool,
	},
}

func checkService(sd *desc.ServiceDescriptor) error {
	for _, method := range []string{MethodRun, MethodReset} {
		md := sd.FindMethodByName(method)
		if md == nil {
			return fmt.Errorf("%s: missing method %s", sd.GetFullyQualifiedName(), method)
		}
		if md.IsClientStreaming() || md.IsServerStreaming() {
			return fmt.Errorf("%s: streaming is not supported", md.GetFullyQualifiedName())
		}
		for _, msg := range []*desc.MessageDescriptor{md.GetInputType(), md.GetOutputType()} {
			if err := checkMessage(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkMessage(msg *desc.MessageDescriptor) error {
	name := msg.GetFullyQualifiedName()
	want, ok := messageFields[name]
	if !ok {
		return fmt.Errorf("unexpected message %s", name)
	}
	for field, typ := range want {
		fd := msg.FindFieldByName(field)
		if fd == nil {
			return fmt.Errorf("%s: missing field %s", name, field)
		}
		if fd.GetType() != typ || fd.IsRepeated() {
			return fmt.Errorf("%s.%s: expected %v, got %v", name, field, typ, fd.GetType())
		}
	}
	return nil
}

func stringField(msg *dynamic.Message, name string) string {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolField(msg *dynamic.Message, name string) bool {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func setFields(msg *dynamic.Message, fields map[string]interface{}) error {
	for name, val := range fields {
		if err := msg.TrySetFieldByName(name, val); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}
