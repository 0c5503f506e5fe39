package emit

// Prelude returns the fixed C++ text spec §4.6 says precedes every
// generated section: includes, defines, exception classes, the small
// library of helper templates (ArrayProxy, ArrayWrapper, Flags, Optional,
// ObjectDestroy/Free/Release, PoolFree, StructureChain, UniqueHandle,
// ResultValue) and the type-trait scaffolding the generated sections plug
// into (CppType, StructExtends's primary template, IndexTypeTraits). None
// of this depends on the registry; it is the same for every input.
func Prelude(namespace, versionMacro string) string {
	return `#ifndef ` + namespace + `_HPP
#define ` + namespace + `_HPP

#include <algorithm>
#include <array>
#include <cstddef>
#include <cstdint>
#include <cstring>
#include <initializer_list>
#include <string>
#include <system_error>
#include <tuple>
#include <type_traits>
#include <vector>

static_assert( VK_HEADER_VERSION == ` + versionMacro + `, "Wrong VK_HEADER_VERSION!" );

namespace ` + namespace + `
{

  template <typename BitType>
  class Flags
  {
  public:
    using MaskType = typename std::underlying_type<BitType>::type;

    VULKAN_HPP_CONSTEXPR Flags() VULKAN_HPP_NOEXCEPT : m_mask( 0 ) {}
    VULKAN_HPP_CONSTEXPR Flags( BitType bit ) VULKAN_HPP_NOEXCEPT : m_mask( static_cast<MaskType>( bit ) ) {}
    VULKAN_HPP_CONSTEXPR Flags( Flags<BitType> const & rhs ) VULKAN_HPP_NOEXCEPT = default;
    VULKAN_HPP_CONSTEXPR explicit Flags( MaskType flags ) VULKAN_HPP_NOEXCEPT : m_mask( flags ) {}

    VULKAN_HPP_CONSTEXPR bool operator!() const VULKAN_HPP_NOEXCEPT { return !m_mask; }
    VULKAN_HPP_CONSTEXPR explicit operator bool() const VULKAN_HPP_NOEXCEPT { return !!m_mask; }
    VULKAN_HPP_CONSTEXPR explicit operator MaskType() const VULKAN_HPP_NOEXCEPT { return m_mask; }

    Flags<BitType> & operator=( Flags<BitType> const & rhs ) VULKAN_HPP_NOEXCEPT = default;

    Flags<BitType> & operator|=( Flags<BitType> const & rhs ) VULKAN_HPP_NOEXCEPT
    {
      m_mask |= rhs.m_mask;
      return *this;
    }

    Flags<BitType> & operator&=( Flags<BitType> const & rhs ) VULKAN_HPP_NOEXCEPT
    {
      m_mask &= rhs.m_mask;
      return *this;
    }

    Flags<BitType> & operator^=( Flags<BitType> const & rhs ) VULKAN_HPP_NOEXCEPT
    {
      m_mask ^= rhs.m_mask;
      return *this;
    }

    VULKAN_HPP_CONSTEXPR Flags<BitType> operator|( Flags<BitType> const & rhs ) const VULKAN_HPP_NOEXCEPT
    {
      return Flags<BitType>( m_mask | rhs.m_mask );
    }

    VULKAN_HPP_CONSTEXPR Flags<BitType> operator&( Flags<BitType> const & rhs ) const VULKAN_HPP_NOEXCEPT
    {
      return Flags<BitType>( m_mask & rhs.m_mask );
    }

    VULKAN_HPP_CONSTEXPR Flags<BitType> operator^( Flags<BitType> const & rhs ) const VULKAN_HPP_NOEXCEPT
    {
      return Flags<BitType>( m_mask ^ rhs.m_mask );
    }

    VULKAN_HPP_CONSTEXPR bool operator==( Flags<BitType> const & rhs ) const VULKAN_HPP_NOEXCEPT { return m_mask == rhs.m_mask; }
    VULKAN_HPP_CONSTEXPR bool operator!=( Flags<BitType> const & rhs ) const VULKAN_HPP_NOEXCEPT { return m_mask != rhs.m_mask; }

  private:
    MaskType m_mask;
  };

  template <typename BitType>
  struct FlagTraits
  {
    enum { allFlags = 0 };
  };

  template <typename RefType>
  class ArrayProxy
  {
  public:
    VULKAN_HPP_CONSTEXPR ArrayProxy() VULKAN_HPP_NOEXCEPT : m_count( 0 ), m_ptr( nullptr ) {}
    ArrayProxy( std::initializer_list<RefType> const & list ) VULKAN_HPP_NOEXCEPT
      : m_count( static_cast<uint32_t>( list.size() ) ), m_ptr( list.begin() )
    {}
    template <typename Allocator = std::allocator<typename std::remove_const<RefType>::type>>
    ArrayProxy( std::vector<typename std::remove_const<RefType>::type, Allocator> const & v ) VULKAN_HPP_NOEXCEPT
      : m_count( static_cast<uint32_t>( v.size() ) ), m_ptr( v.data() )
    {}

    const RefType * begin() const VULKAN_HPP_NOEXCEPT { return m_ptr; }
    const RefType * end() const VULKAN_HPP_NOEXCEPT { return m_ptr + m_count; }
    uint32_t size() const VULKAN_HPP_NOEXCEPT { return m_count; }
    const RefType * data() const VULKAN_HPP_NOEXCEPT { return m_ptr; }

  private:
    uint32_t m_count;
    const RefType * m_ptr;
  };

  template <typename T, size_t N>
  class ArrayWrapper : public std::array<T, N>
  {
  public:
    ArrayWrapper() VULKAN_HPP_NOEXCEPT : std::array<T, N>() {}
    ArrayWrapper( std::array<T, N> const & data ) VULKAN_HPP_NOEXCEPT : std::array<T, N>( data ) {}
  };

  template <typename T>
  class Optional
  {
  public:
    Optional( T & reference ) VULKAN_HPP_NOEXCEPT { m_ptr = &reference; }
    Optional( T * ptr ) VULKAN_HPP_NOEXCEPT { m_ptr = ptr; }
    Optional( std::nullptr_t ) VULKAN_HPP_NOEXCEPT { m_ptr = nullptr; }

    operator T *() const VULKAN_HPP_NOEXCEPT { return m_ptr; }
    T const * operator->() const VULKAN_HPP_NOEXCEPT { return m_ptr; }
    explicit operator bool() const VULKAN_HPP_NOEXCEPT { return !!m_ptr; }

  private:
    T * m_ptr;
  };

  template <typename Type, typename Dispatch>
  class ObjectDestroy
  {
  public:
    ObjectDestroy() VULKAN_HPP_NOEXCEPT = default;
    ObjectDestroy( Dispatch const & dispatch ) VULKAN_HPP_NOEXCEPT : m_dispatch( &dispatch ) {}

  protected:
    void destroy( Type t ) VULKAN_HPP_NOEXCEPT { t.destroy( *m_dispatch ); }

  private:
    Dispatch const * m_dispatch = nullptr;
  };

  template <typename Type, typename Dispatch>
  class ObjectFree
  {
  public:
    ObjectFree() VULKAN_HPP_NOEXCEPT = default;
    ObjectFree( Dispatch const & dispatch ) VULKAN_HPP_NOEXCEPT : m_dispatch( &dispatch ) {}

  protected:
    void destroy( Type t ) VULKAN_HPP_NOEXCEPT { t.free( *m_dispatch ); }

  private:
    Dispatch const * m_dispatch = nullptr;
  };

  template <typename Type, typename Dispatch>
  class ObjectRelease
  {
  public:
    ObjectRelease() VULKAN_HPP_NOEXCEPT = default;
    ObjectRelease( Dispatch const & dispatch ) VULKAN_HPP_NOEXCEPT : m_dispatch( &dispatch ) {}

  protected:
    void destroy( Type t ) VULKAN_HPP_NOEXCEPT { t.release( *m_dispatch ); }

  private:
    Dispatch const * m_dispatch = nullptr;
  };

  template <typename Type, typename PoolType, typename Dispatch>
  class PoolFree
  {
  public:
    PoolFree() VULKAN_HPP_NOEXCEPT = default;
    PoolFree( PoolType pool, Dispatch const & dispatch ) VULKAN_HPP_NOEXCEPT : m_pool( pool ), m_dispatch( &dispatch ) {}

  protected:
    void destroy( Type t ) VULKAN_HPP_NOEXCEPT { t.free( m_pool, 1, &t, *m_dispatch ); }

  private:
    PoolType m_pool{};
    Dispatch const * m_dispatch = nullptr;
  };

  template <typename Type, typename Deleter, typename Dispatch = VULKAN_HPP_DEFAULT_DISPATCHER_TYPE>
  class UniqueHandle : public Deleter
  {
  public:
    UniqueHandle() VULKAN_HPP_NOEXCEPT : Deleter(), m_value() {}
    UniqueHandle( Type value, Deleter const & deleter ) VULKAN_HPP_NOEXCEPT : Deleter( deleter ), m_value( value ) {}
    UniqueHandle( UniqueHandle const & ) = delete;
    UniqueHandle( UniqueHandle && other ) VULKAN_HPP_NOEXCEPT
      : Deleter( std::move( static_cast<Deleter &>( other ) ) ), m_value( other.release() )
    {}
    ~UniqueHandle() VULKAN_HPP_NOEXCEPT
    {
      if ( m_value )
        this->destroy( m_value );
    }

    UniqueHandle & operator=( UniqueHandle const & ) = delete;
    UniqueHandle & operator=( UniqueHandle && other ) VULKAN_HPP_NOEXCEPT
    {
      reset( other.release() );
      *static_cast<Deleter *>( this ) = std::move( static_cast<Deleter &>( other ) );
      return *this;
    }

    explicit operator bool() const VULKAN_HPP_NOEXCEPT { return m_value.operator bool(); }
    Type const * operator->() const VULKAN_HPP_NOEXCEPT { return &m_value; }
    Type const & operator*() const VULKAN_HPP_NOEXCEPT { return m_value; }
    Type get() const VULKAN_HPP_NOEXCEPT { return m_value; }

    void reset( Type value = Type() ) VULKAN_HPP_NOEXCEPT
    {
      if ( m_value != value )
      {
        if ( m_value )
          this->destroy( m_value );
        m_value = value;
      }
    }

    Type release() VULKAN_HPP_NOEXCEPT
    {
      Type value = m_value;
      m_value = nullptr;
      return value;
    }

  private:
    Type m_value;
  };

  template <typename X, typename Y>
  struct StructExtends
  {
    enum { value = false };
  };

  struct StructureChainBase
  {};

  template <typename X, typename Y = StructureChainBase, typename Z = StructureChainBase>
  class StructureChain : public std::tuple<X, Y, Z>
  {
  public:
    StructureChain() VULKAN_HPP_NOEXCEPT
    {
      static_assert( StructExtends<Y, X>::value, "Y does not extend X" );
      static_assert( StructExtends<Z, X>::value || std::is_same<Z, StructureChainBase>::value, "Z does not extend X" );
      link<Y, Z>();
    }

    template <typename T = X>
    T & get() VULKAN_HPP_NOEXCEPT
    {
      return std::get<T>( static_cast<std::tuple<X, Y, Z> &>( *this ) );
    }

  private:
    template <typename P, typename Q>
    void link() VULKAN_HPP_NOEXCEPT
    {
      auto & x = std::get<0>( static_cast<std::tuple<X, Y, Z> &>( *this ) );
      auto & y = std::get<1>( static_cast<std::tuple<X, Y, Z> &>( *this ) );
      x.pNext = &y;
    }
  };

  template <typename T>
  struct ResultValue
  {
    ResultValue( Result r, T & v ) : result( r ), value( v ) {}
    ResultValue( Result r, T && v ) : result( r ), value( std::move( v ) ) {}

    Result result;
    T      value;

    operator std::tuple<Result &, T &>() VULKAN_HPP_NOEXCEPT { return std::tuple<Result &, T &>( result, value ); }
  };

  class ErrorCategoryImpl : public std::error_category
  {
  public:
    virtual const char * name() const VULKAN_HPP_NOEXCEPT override { return "VulkanResult"; }
    virtual std::string message( int ev ) const override { return to_string( static_cast<Result>( ev ) ); }
  };

  class Error
  {
  public:
    virtual ~Error() = default;
    virtual const char * what() const VULKAN_HPP_NOEXCEPT = 0;
  };

  class LogicError : public Error, public std::logic_error
  {
  public:
    explicit LogicError( const std::string & what ) : Error(), std::logic_error( what ) {}
    virtual const char * what() const VULKAN_HPP_NOEXCEPT override { return std::logic_error::what(); }
  };

  class SystemError : public Error, public std::system_error
  {
  public:
    SystemError( std::error_code ec ) : Error(), std::system_error( ec ) {}
    SystemError( std::error_code ec, std::string const & what ) : Error(), std::system_error( ec, what ) {}
    virtual const char * what() const VULKAN_HPP_NOEXCEPT override { return std::system_error::what(); }
  };

  VULKAN_HPP_INLINE const std::error_category & errorCategory() VULKAN_HPP_NOEXCEPT
  {
    static ErrorCategoryImpl instance;
    return instance;
  }

  VULKAN_HPP_INLINE std::error_code make_error_code( Result e ) VULKAN_HPP_NOEXCEPT
  {
    return std::error_code( static_cast<int>( e ), errorCategory() );
  }

  VULKAN_HPP_INLINE void throwResultException( Result result, char const * message )
  {
    throw SystemError( make_error_code( result ), message );
  }

  VULKAN_HPP_INLINE void resultCheck( Result result, char const * message )
  {
    if ( result != Result::eSuccess )
      throwResultException( result, message );
  }

  VULKAN_HPP_INLINE void resultCheck( Result result, char const * message, std::initializer_list<Result> successCodes )
  {
    if ( std::find( successCodes.begin(), successCodes.end(), result ) == successCodes.end() )
      throwResultException( result, message );
  }

  template <typename EnumType, EnumType value>
  struct CppType
  {};

  template <typename T>
  struct IndexTypeTraits
  {
    static constexpr bool enabled = false;
  };

`
}

// PreludeClose returns the closing namespace/include-guard text paired with
// Prelude's opening.
func PreludeClose(namespace string) string {
	return "\n} // namespace " + namespace + "\n\n#endif // " + namespace + "_HPP\n"
}
