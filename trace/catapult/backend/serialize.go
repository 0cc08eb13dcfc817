package backend

import (
	"strconv"

	"spantrace/trace/catapult"
)

// The functions in this file render one Catapult event object each.
// Field order is fixed and deliberate: it is part of the wire contract,
// and keeping it stable makes golden-file tests straightforward.

func appendDurationEvent(buf []byte, pid int, tid int64, name string, startUs, endUs int64, attrs catapult.Attrs) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"cat":"","tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"dur":`...)
	buf = durationField(buf, startUs, endUs)
	buf = append(buf, `,"ts":`...)
	buf = microsField(buf, startUs)
	buf = append(buf, `,"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	buf = append(buf, `,"ph":"X"`...)
	buf = appendOptionalArgs(buf, attrs)
	buf = append(buf, '}')
	return buf
}

func appendManualBeginEvent(buf []byte, pid int, tid int64, id catapult.SpanID, name string, ts int64, sync bool, attrs catapult.Attrs) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"cat":"trace","id":`...)
	buf = appendInt(buf, int64(id))
	buf = append(buf, `,"tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"ts":`...)
	buf = microsField(buf, ts)
	buf = append(buf, `,"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	if sync {
		buf = append(buf, `,"ph":"B"`...)
	} else {
		buf = append(buf, `,"ph":"b"`...)
	}
	buf = appendOptionalArgs(buf, attrs)
	buf = append(buf, '}')
	return buf
}

func appendManualEndEvent(buf []byte, pid int, tid int64, id catapult.SpanID, name string, ts int64, sync bool) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"cat":"trace","id":`...)
	buf = appendInt(buf, int64(id))
	buf = append(buf, `,"tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"ts":`...)
	buf = microsField(buf, ts)
	buf = append(buf, `,"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	if sync {
		buf = append(buf, `,"ph":"E"`...)
	} else {
		buf = append(buf, `,"ph":"e"`...)
	}
	buf = append(buf, '}')
	return buf
}

func appendInstantEvent(buf []byte, pid int, tid int64, name string, ts int64, attrs catapult.Attrs) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"cat":"","tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"ts":`...)
	buf = microsField(buf, ts)
	buf = append(buf, `,"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	buf = append(buf, `,"ph":"I"`...)
	buf = appendOptionalArgs(buf, attrs)
	buf = append(buf, '}')
	return buf
}

func appendCounterEvent(buf []byte, pid int, tid int64, name string, ts int64, value catapult.CounterValue) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"ts":`...)
	buf = microsField(buf, ts)
	buf = append(buf, `,"name":"c","ph":"C","args":{`...)
	buf = catapult.AppendJSONString(buf, name)
	buf = append(buf, ':')
	if value.IsFloat {
		buf = catapult.Float(value.F).AppendJSON(buf)
	} else {
		buf = catapult.Int(value.I).AppendJSON(buf)
	}
	buf = append(buf, '}', '}')
	return buf
}

func appendThreadNameEvent(buf []byte, pid int, tid int64, name string) []byte {
	p, t := pidTidFor(pid, tid)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"tid":`...)
	buf = appendInt(buf, t)
	buf = append(buf, `,"name":"thread_name","ph":"M","args":{"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	buf = append(buf, '}', '}')
	return buf
}

func appendProcessNameEvent(buf []byte, pid int, name string) []byte {
	p, _ := pidTidFor(pid, 0)
	buf = append(buf, `{"pid":`...)
	buf = appendInt(buf, int64(p))
	buf = append(buf, `,"name":"process_name","ph":"M","args":{"name":`...)
	buf = catapult.AppendJSONString(buf, name)
	buf = append(buf, '}', '}')
	return buf
}

func appendOptionalArgs(buf []byte, attrs catapult.Attrs) []byte {
	if len(attrs) == 0 {
		return buf
	}
	buf = append(buf, `,"args":`...)
	buf = catapult.AppendArgsObject(buf, attrs)
	return buf
}

func appendInt(buf []byte, v int64) []byte {
	return strconv.AppendInt(buf, v, 10)
}
